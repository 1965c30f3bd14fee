package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/binarystar-simulator/internal/logging"
)

const tracerName = "github.com/signalsfoundry/binarystar-simulator/internal/server"

// tracingMiddleware opens a server span per request, keyed by the route
// pattern so all requests for one endpoint share a span name regardless
// of path parameters.
func tracingMiddleware(route string, next http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, reqID := logging.EnsureRequestID(r.Context())
		ctx, span := tracer.Start(ctx, fmt.Sprintf("API/%s %s", r.Method, route),
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", r.URL.Path),
			attribute.String("request_id", reqID),
		)

		sw := &spanStatusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", sw.status))
		if sw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.status))
		}
	})
}

// startChildSpan opens a child span for computations inside handlers.
// The system name is attached when non-empty to aid trace navigation.
func startChildSpan(ctx context.Context, name, system string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	var attrs []attribute.KeyValue
	if system != "" {
		attrs = append(attrs, attribute.String("system", system))
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

type spanStatusWriter struct {
	http.ResponseWriter
	status int
}

func (w *spanStatusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack forwards to the wrapped writer so websocket upgrades work
// through the middleware.
func (w *spanStatusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}
