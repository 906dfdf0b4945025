package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "session-middleware-secret"

func setupSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.Use(NewSessionMiddleware(testSecret, "gym_session", time.Hour, false).Ensure())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})
	return r
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	r := setupSessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "gym_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := util.ParseSessionToken(cookies[0].Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), claims.SessionID)
}

func TestSessionMiddleware_ReusesValidCookie(t *testing.T) {
	r := setupSessionRouter()
	token, err := util.IssueSessionToken("existing-session", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "gym_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "existing-session", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddleware_ReplacesForgedCookie(t *testing.T) {
	r := setupSessionRouter()
	forged, err := util.IssueSessionToken("victim", "other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "gym_session", Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "victim", w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestCSRF_RejectsPostWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRF([]byte("01234567890123456789012345678901"), false))
	r.POST("/submit", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, "form") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "ok")
}
