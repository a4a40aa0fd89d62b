package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет строку лога на каждый запрос: метод, путь, статус, длительность и request id
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			requestID := RequestIDFromContext(r.Context())

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d, duration=%s, request_id=%s",
					r.Method, r.URL.RequestURI(), rec.status, duration, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d, duration=%s, request_id=%s",
					r.Method, r.URL.RequestURI(), rec.status, duration, requestID)
			default:
				logger.Info("%s %s - status=%d, duration=%s, request_id=%s",
					r.Method, r.URL.RequestURI(), rec.status, duration, requestID)
			}
		})
	}
}
