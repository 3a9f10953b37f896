package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware allows the browser client to call the API from the
// configured origins. allowedOrigins is a comma-separated list, or "*".
func CORSMiddleware(next http.Handler, allowedOrigins string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		validOrigin := false
		if allowedOrigins == "*" {
			validOrigin = true
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, o := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(o) == origin {
					validOrigin = true
					w.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}

		if validOrigin {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
