package middleware

import "net/http"

// BodyLimit caps request body size for every route. Oversized bodies fail at
// read time inside the JSON decoding path, which reports the usual "request
// body too large" error.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
