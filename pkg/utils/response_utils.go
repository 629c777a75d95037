package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope of every successful call.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// RespondSuccess writes data under the success envelope.
func RespondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

// RespondOK is RespondSuccess with 200 and no message.
func RespondOK(c *gin.Context, data interface{}) {
	RespondSuccess(c, http.StatusOK, "", data)
}

// RespondList writes a collection together with its length.
func RespondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data, Count: &count})
}
