package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
)

// InternalTokenMiddleware gates the operator surface (scheduled-rule trigger,
// insight ingestion) behind a shared secret. The callers are the cron runner
// and the insight batch job, not end users.
func InternalTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_TOKEN")
		got := r.Header.Get("X-Internal-Token")
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
