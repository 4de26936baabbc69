package dashboard

import (
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxaizer/sam-finder/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		entry := log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		})

		if ww.Status() >= http.StatusInternalServerError {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Error("request failed")
			return
		}
		entry.Debug("request served")
	})
}
