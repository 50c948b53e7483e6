package response

import (
	"net/http"

	"clubly/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// AbortJSON responds with an error envelope and stops the handler chain
func AbortJSON(c *gin.Context, code int, message string) {
	RespondJSON(c, StatusError, code, message, nil, nil)
	c.Abort()
}

// RespondServerError logs err against the request and responds with a 500
func RespondServerError(c *gin.Context, message string, data interface{}, err error) {
	logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
	RespondJSON(c, StatusError, http.StatusInternalServerError, message, data, err.Error())
}
