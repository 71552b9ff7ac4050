package utils

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes data as the response body without an envelope.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func RespondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// RespondError writes err using the status of its kind and aborts the chain.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	code := StatusCode(appErr.Kind)
	if code >= 500 {
		ErrorLogger.WithError(appErr.Unwrap()).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
	}
	c.AbortWithStatusJSON(code, ErrorResponse{
		Status:  false,
		Message: appErr.Error(),
		Errors:  appErr.Fields,
	})
}
