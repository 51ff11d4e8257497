package middleware

import (
	"fmt"
	"net/http"
)

// BodySizeLimit caps request bodies at maxBytes. Requests that announce a
// larger Content-Length get a 413 without reaching next; chunked bodies
// are wrapped so the handler's read fails with *http.MaxBytesError.
// A non-positive maxBytes disables the limit.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		tooLarge := fmt.Sprintf("request body exceeds %d bytes", maxBytes)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Body == nil || r.Body == http.NoBody:
			case r.ContentLength > maxBytes:
				writeError(w, http.StatusRequestEntityTooLarge, tooLarge)
				return
			default:
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
