package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/logging"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

func ExtractClaims(r *http.Request) (*auth.Claims, error) {
	claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims)
	if !ok {
		logging.Logg.Error("Claims not found in context")
		return nil, errors.New("claims not found in context")
	}
	return claims, nil
}

type (
	responseData struct {
		status int
		size   int
	}
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

func LoggingMiddleware(logg *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			responseData := &responseData{}
			lw := loggingResponseWriter{
				ResponseWriter: w,
				responseData:   responseData,
			}
			next.ServeHTTP(&lw, r)
			duration := time.Since(start)

			logg.Info("request",
				"uri", r.RequestURI,
				"method", r.Method,
				"status", fmt.Sprintf("%v: %v", responseData.status, http.StatusText(responseData.status)),
				slog.Duration("duration", duration),
				"size", responseData.size,
			)
		})
	}
}
