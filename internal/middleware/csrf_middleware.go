package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/milicode/gym-panel/pkg/logger"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "gorilla.csrf.Token"

// CSRF adapts gorilla/csrf to gin. Unsafe methods without a valid token are
// answered with 403. secure=false marks requests as plain HTTP so the origin
// check does not demand TLS in development.
func CSRF(authKey []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := logger.Fields{"path": r.URL.Path}
			if reason := csrf.FailureReason(r); reason != nil {
				fields["reason"] = reason.Error()
			}
			logger.Warn("CSRF validation failed", fields)
			http.Error(w, "درخواست نامعتبر است", http.StatusForbidden)
		})),
	)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})

		r := c.Request
		if !secure {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protect(next).ServeHTTP(c.Writer, r)

		if !passed {
			c.Abort()
		}
	}
}
