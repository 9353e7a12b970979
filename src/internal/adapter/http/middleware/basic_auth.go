package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth admits requests whose basic-auth user is channelID and whose
// password matches channelKeyHash (bcrypt).
func BasicAuth(channelID, channelKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || channelKeyHash == "" {
				logger.Error("basic auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || bcrypt.CompareHashAndPassword([]byte(channelKeyHash), []byte(key)) != nil {
				logger.Info("basic auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"requestId":   RequestIDFromContext(r.Context()),
					"credentials": "invalid_or_missing",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
