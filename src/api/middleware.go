package api

import (
	"net/http"
	"time"

	"tradeledger/src/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger tags every request with a request id, injects the logger into
// the context and logs one line per completed request.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			entry := logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			ctx := utils.WithLogger(r.Context(), entry)
			w.Header().Set("X-Request-Id", requestID)

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))
			entry.WithField("duration_ms", time.Since(start).Milliseconds()).Info("request completed")
		})
	}
}
