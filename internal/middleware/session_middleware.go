package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/pkg/logger"
	"github.com/milicode/gym-panel/pkg/util"
)

// SessionIDKey holds the wizard session id in the gin context.
const SessionIDKey = "session_id"

type SessionMiddleware struct {
	secret     string
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewSessionMiddleware(secret, cookieName string, ttl time.Duration, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		secret:     secret,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Ensure resolves the session from the signed cookie. A missing, expired or
// forged cookie starts a new session; the old draft is then unreachable and
// expires with its TTL.
func (m *SessionMiddleware) Ensure() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		if raw, err := c.Cookie(m.cookieName); err == nil && raw != "" {
			claims, err := util.ParseSessionToken(raw, m.secret)
			if err == nil {
				c.Set(SessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			log.Debug("Discarding session cookie", logger.Fields{
				"error": err.Error(),
			})
		}

		sessionID := util.NewSessionID()
		token, err := util.IssueSessionToken(sessionID, m.secret, m.ttl)
		if err != nil {
			log.Error("Failed to issue session token", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
		c.Set(SessionIDKey, sessionID)
		log.Debug("Session started", logger.Fields{"session_id": sessionID})

		c.Next()
	}
}

// GetSessionID returns the session resolved by Ensure.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
