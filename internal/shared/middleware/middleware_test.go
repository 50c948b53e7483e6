package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubly/internal/shared/config"
	"clubly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}

	r := gin.New()
	r.POST("/admin", JWTAuthWithConfig(cfg), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserRole))
	})
	return r
}

func TestJWTAuthAndRequireAdmin(t *testing.T) {
	valid := jwt.MapClaims{
		"user_id": "u-1",
		"role":    RoleAdmin,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signToken(t, valid, "other"), http.StatusUnauthorized},
		{"refresh token", "Bearer " + signToken(t, jwt.MapClaims{"role": RoleAdmin, "type": "refresh"}, testSecret), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, jwt.MapClaims{"role": RoleAdmin, "type": "access", "exp": time.Now().Add(-time.Minute).Unix()}, testSecret), http.StatusUnauthorized},
		{"not admin", "Bearer " + signToken(t, jwt.MapClaims{"role": "user", "type": "access"}, testSecret), http.StatusForbidden},
		{"admin", "Bearer " + signToken(t, valid, testSecret), http.StatusOK},
	}

	r := adminRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(logger.NewWithWriter(&buf, "info", true)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())
	assert.Contains(t, buf.String(), generated)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
}
