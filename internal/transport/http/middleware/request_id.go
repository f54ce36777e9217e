package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"perftrack/internal/platform/requestctx"
)

// RequestID assigns every request a correlation id, honoring one supplied by
// the client, and echoes it back in the response header so a caller can quote
// it when reporting a problem.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
