package httpserver

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// TraceMiddleware opens a server span per request. It runs before RequestID
// so the request logger can correlate with the span's trace id.
func TraceMiddleware(next http.Handler) http.Handler {
	tr := otel.Tracer("interview.http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tr.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)
		if reqID := r.Header.Get("X-Request-Id"); reqID != "" {
			span.SetAttributes(attribute.String("request.id", reqID))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
