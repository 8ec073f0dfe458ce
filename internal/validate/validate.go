// SPDX-License-Identifier: MIT

// Package validate accumulates field-level configuration errors so one pass
// over a bad config reports everything wrong with it, not just the first
// failure.
package validate

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Error is a single failed check.
type Error struct {
	Field   string
	Value   any
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Errors bundles every failed check from one validation pass.
type Errors []Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validator collects failed checks. The zero value is ready to use.
type Validator struct {
	errs Errors
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failed check directly, for conditions the built-in
// checks do not cover.
func (v *Validator) AddError(field, message string, value any) {
	v.errs = append(v.errs, Error{Field: field, Value: value, Message: message})
}

// IsValid reports whether every check so far passed.
func (v *Validator) IsValid() bool {
	return len(v.errs) == 0
}

// Err returns the accumulated failures as a single error, or nil when all
// checks passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	out := make(Errors, len(v.errs))
	copy(out, v.errs)
	return out
}

// NotEmpty fails when value is empty or whitespace-only.
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// OneOf fails unless value matches one of the allowed strings exactly.
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("value must be one of %v, got %q", allowed, value), value)
}

// NonNegative fails when value is below zero.
func (v *Validator) NonNegative(field string, value int) {
	if value < 0 {
		v.AddError(field, fmt.Sprintf("value cannot be negative, got %d", value), value)
	}
}

// Range fails when value lies outside [lo, hi].
func (v *Validator) Range(field string, value, lo, hi int) {
	if value < lo || value > hi {
		v.AddError(field, fmt.Sprintf("value must be between %d and %d, got %d", lo, hi, value), value)
	}
}

// LogLevel fails unless value is one of the levels the logger accepts.
func (v *Validator) LogLevel(field, value string) {
	switch value {
	case "trace", "debug", "info", "warn", "error":
	default:
		v.AddError(field, fmt.Sprintf("invalid log level %q (must be trace, debug, info, warn or error)", value), value)
	}
}

// HostPort fails unless value parses as "host:port" or ":port" with a port
// between 1 and 65535.
func (v *Validator) HostPort(field, value string) {
	if value == "" {
		v.AddError(field, "listen address cannot be empty", value)
		return
	}

	_, portStr, err := net.SplitHostPort(value)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid listen address: %v", err), value)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid port %q in listen address", portStr), value)
		return
	}
	if port <= 0 || port > 65535 {
		v.AddError(field, fmt.Sprintf("port must be between 1 and 65535, got %d", port), value)
	}
}

// Directory checks that path names a usable directory. With mustExist false
// a missing directory is created. Paths containing ".." segments are
// rejected before the filesystem is touched.
func (v *Validator) Directory(field, path string, mustExist bool) {
	abs, ok := v.cleanDirPath(field, path)
	if !ok {
		return
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil:
		if !info.IsDir() {
			v.AddError(field, "path is not a directory", path)
		}
	case os.IsNotExist(err):
		if mustExist {
			v.AddError(field, "directory does not exist", path)
			return
		}
		if err := os.MkdirAll(abs, 0750); err != nil {
			v.AddError(field, fmt.Sprintf("cannot create directory: %v", err), path)
		}
	default:
		v.AddError(field, fmt.Sprintf("cannot access directory: %v", err), path)
	}
}

// WritableDirectory runs Directory and then probes for write access by
// creating and removing a file inside it.
func (v *Validator) WritableDirectory(field, path string, mustExist bool) {
	before := len(v.errs)
	v.Directory(field, path, mustExist)
	if len(v.errs) > before {
		return
	}

	abs, ok := v.cleanDirPath(field, path)
	if !ok {
		return
	}
	probe, err := os.CreateTemp(abs, ".writable-*")
	if err != nil {
		v.AddError(field, "directory is not writable", path)
		return
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
}

func (v *Validator) cleanDirPath(field, path string) (string, bool) {
	if path == "" {
		v.AddError(field, "directory path cannot be empty", path)
		return "", false
	}
	if strings.Contains(path, "..") {
		v.AddError(field, "path contains traversal sequences (..)", path)
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid path: %v", err), path)
		return "", false
	}
	return abs, true
}
