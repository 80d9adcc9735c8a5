package middleware

import "net/http"

// MaxRequestSize caps request body reads at limit bytes. Oversized bodies
// surface as http.MaxBytesError when the handler decodes them.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
