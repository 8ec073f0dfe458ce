// SPDX-License-Identifier: MIT

package log

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// ctxKey keeps the stored values private to this package.
type ctxKey string

const (
	requestIDKey     ctxKey = "request_id"
	correlationIDKey ctxKey = "correlation_id"
)

func withID(ctx context.Context, key ctxKey, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, id)
}

func idFrom(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(key).(string)
	return id
}

// ContextWithRequestID stores the per-request ID for later log enrichment.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withID(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores the cross-service correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withID(ctx, correlationIDKey, id)
}

// RequestIDFromContext returns the stored request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	return idFrom(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the stored correlation ID, or "" when
// absent.
func CorrelationIDFromContext(ctx context.Context) string {
	return idFrom(ctx, correlationIDKey)
}

// WithContext copies the correlation identifiers found in ctx onto logger.
// A context without identifiers returns the logger unchanged.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}

	ids := []struct{ field, value string }{
		{FieldRequestID, RequestIDFromContext(ctx)},
		{FieldCorrelationID, CorrelationIDFromContext(ctx)},
	}

	builder := logger.With()
	found := false
	for _, id := range ids {
		if id.value != "" {
			builder = builder.Str(id.field, id.value)
			found = true
		}
	}
	if !found {
		return logger
	}
	return builder.Logger()
}

// WithComponentFromContext returns the context's logger annotated with a
// component name and the context's correlation identifiers.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	l := FromContext(ctx)
	return WithContext(ctx, l.With().Str(FieldComponent, component).Logger())
}

// WithTraceContext returns a logger carrying the active span's trace_id and
// span_id, so log lines can be joined with traces. Without a valid span the
// base logger is returned unchanged.
func WithTraceContext(ctx context.Context) zerolog.Logger {
	l := logger()
	if ctx == nil {
		return l
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return l
	}
	builder := l.With().Str("trace_id", spanCtx.TraceID().String())
	if spanCtx.HasSpanID() {
		builder = builder.Str("span_id", spanCtx.SpanID().String())
	}
	return builder.Logger()
}

// FromContext returns the request-scoped logger injected by Middleware, or
// the base logger when none is present.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := Base()
		return &l
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		b := Base()
		return &b
	}
	return l
}
