package queue

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "amp-collections/queue"

// startRunSpan opens the span covering one drain run, from Start until the queue drains or is stopped.
// The caller is responsible for calling span.End().
//
//nolint:spancheck
func startRunSpan(ctx context.Context, id, name string, opts Options) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "timedqueue.run")
	span.SetAttributes(
		attribute.String("queue.id", id),
		attribute.String("queue.name", name),
		attribute.Int("queue.item_count", opts.ItemCount),
		attribute.Int64("queue.every_ms", opts.Every.Milliseconds()),
		attribute.Int64("queue.time_ms", opts.Time.Milliseconds()),
	)

	return ctx, span
}

// startTickSpan opens a child span for one tick emission.
//
//nolint:spancheck
func startTickSpan(ctx context.Context, batch int, remaining int) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "timedqueue.tick")
	span.SetAttributes(
		attribute.Int("queue.batch", batch),
		attribute.Int("queue.remaining", remaining),
	)

	return ctx, span
}
