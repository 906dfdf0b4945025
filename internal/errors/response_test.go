package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/pkg/gymapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParseAndRespond(c, gymapi.ErrNetwork, ContextFetch)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.Equal(t, RemoteNetworkError, body.Error)
	assert.Equal(t, "خطای شبکه: سرور پاسخگو نیست", body.Message)
}

func TestDefaultMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Unauthorized(c, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, SessionInvalid, decode(t, w).Error)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	InternalError(c, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decode(t, w).Message)
}
