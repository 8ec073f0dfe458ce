// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldSessionID     = "session_id"
	FieldCorrelationID = "correlation_id"
	FieldRequestID     = "request_id"
	FieldProfile       = "profile"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldOutcome   = "outcome"

	// Property fields
	FieldPropTag = "prop_tag"
	FieldPropID  = "prop_id"
	FieldPropSet = "prop_set"
	FieldKey     = "key"

	// Storage fields
	FieldBackend = "backend"
	FieldStore   = "store"
	FieldPath    = "path"
)
