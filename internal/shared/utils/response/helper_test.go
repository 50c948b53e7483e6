package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondServerErrorLogsAndResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	previous := logger.GetDefault()
	var buf bytes.Buffer
	logger.SetDefault(logger.NewWithWriter(&buf, "info", true))
	t.Cleanup(func() { logger.SetDefault(previous) })

	r := gin.New()
	r.GET("/discovery/events", func(c *gin.Context) {
		RespondServerError(c, "Failed to retrieve events", nil, errors.New("db down"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discovery/events", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, StatusError, body.Status)
	assert.Equal(t, "Failed to retrieve events", body.Message)
	assert.Equal(t, "db down", body.Errors)

	assert.Contains(t, buf.String(), `"msg":"HTTP Error"`)
	assert.Contains(t, buf.String(), `"error":"db down"`)
	assert.Contains(t, buf.String(), `"path":"/discovery/events"`)
}
