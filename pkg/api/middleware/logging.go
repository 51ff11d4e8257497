package middleware

import (
	"net/http"
	"time"

	"github.com/dd0wney/ppinet/pkg/logging"
)

// Logging creates middleware that logs every request with its status and
// latency. The request ID, when present, is added as a field, and a logger
// carrying it is stored in the request context for handlers.
func Logging(logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger
			if id := GetRequestID(r); id != "" {
				reqLogger = logger.With(logging.String("request_id", id))
			}
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Int("status", sw.statusCode),
				logging.Latency(time.Since(start)),
			}
			switch {
			case sw.statusCode >= 500:
				reqLogger.Error("request failed", fields...)
			case sw.statusCode >= 400:
				reqLogger.Warn("request rejected", fields...)
			default:
				reqLogger.Info("request served", fields...)
			}
		})
	}
}
