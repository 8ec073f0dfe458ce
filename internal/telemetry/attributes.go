// SPDX-License-Identifier: MIT

package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"

	// Property attributes
	PropTagKey  = "prop.tag"
	PropIDKey   = "prop.id"
	PropTypeKey = "prop.type"
	PropSetKey  = "prop.set"
	PropKindKey = "prop.kind"

	// Named-property resolution attributes
	ResolveCountKey   = "resolve.count"
	ResolveCreatedKey = "resolve.created"
	ResolveFlagsKey   = "resolve.flags"

	// Store attributes
	StoreBackendKey = "store.backend"
	StoreNameKey    = "store.name"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// PropTagAttributes creates property-tag span attributes.
func PropTagAttributes(tag uint32) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(PropTagKey, fmt.Sprintf("0x%08X", tag)),
		attribute.Int(PropIDKey, int(tag>>16)),
		attribute.Int(PropTypeKey, int(tag&0xFFFF)),
	}
}

// ResolveAttributes creates named-property resolution span attributes.
func ResolveAttributes(count int, flags uint32, created bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(ResolveCountKey, count),
		attribute.String(ResolveFlagsKey, fmt.Sprintf("0x%08X", flags)),
		attribute.Bool(ResolveCreatedKey, created),
	}
}

// StoreAttributes creates store-related span attributes.
func StoreAttributes(backend, name string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if backend != "" {
		attrs = append(attrs, attribute.String(StoreBackendKey, backend))
	}
	if name != "" {
		attrs = append(attrs, attribute.String(StoreNameKey, name))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
