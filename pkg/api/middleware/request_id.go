package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ContextKey string

const (
	RequestIDContextKey ContextKey = "request_id"
	RequestIDHeader                = "X-Request-ID"
)

const maxRequestIDLength = 64

// GetRequestID returns the ID RequestID stored on r, or "".
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDContextKey).(string)
	return id
}

func requestIDRune(c rune) rune {
	if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || strings.ContainsRune("-_.", c) {
		return c
	}
	return -1
}

// sanitizeRequestID keeps letters, digits, '-', '_' and '.'
func sanitizeRequestID(id string) string {
	return strings.Map(requestIDRune, id)
}

// incomingRequestID cuts a client ID to maxRequestIDLength before
// sanitizing it, so the result is never longer than the limit.
func incomingRequestID(r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if len(id) > maxRequestIDLength {
		id = id[:maxRequestIDLength]
	}
	return sanitizeRequestID(id)
}

// RequestID tags each request with an ID, reusing the client's
// X-Request-ID when it survives sanitizing and minting a UUID otherwise.
// The ID is put on the context and echoed back in the response header.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := incomingRequestID(r)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIDContextKey, id)))
		})
	}
}
