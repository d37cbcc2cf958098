package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/pitchside/fantasy-cricket/internal/usecase")

// startSpan opens a child span when the incoming context already carries a
// trace; scheduler ticks without one stay span-free instead of rooting a new
// trace per poll.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name)
}
