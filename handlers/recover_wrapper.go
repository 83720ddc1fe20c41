package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"

	"platerental/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RecoverWrapper tags the request with an id, logs it, and turns a panic
// into a 500.
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		log := logger.WithRequestID(requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Error().
					Interface("panic", p).
					Str("stack", string(stack)).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				writeFail(rec, http.StatusInternalServerError, "internal server error")
			}
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		}()

		handler(rec, r)
	}
}
