package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	tracer      = otel.Tracer("github.com/riskibarqy/fantasy-coach/internal/interfaces/httpapi")
	discardSpan = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler operations. Middleware and
// response helpers already run under the otelhttp server span, and filtered
// routes such as /healthz have no parent at all; both get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, discardSpan
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if id := logging.RequestIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String("request.id", id))
	}
	return ctx, span
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
