// Package response renders JSON bodies for the HTTP layer.
package response

import (
	"errors"

	"jobboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Code    apperr.Kind         `json:"code"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// Body builds the error body and status for err. Internal details never
// reach the client.
func Body(err error) (int, ErrorBody) {
	kind := apperr.KindOf(err)
	body := ErrorBody{Code: kind, Message: "internal error"}

	var e *apperr.Error
	if kind != apperr.KindInternal && errors.As(err, &e) {
		body.Message = e.Message
		body.Errors = e.Fields
	}

	return kind.HTTPStatus(), body
}

// Error writes err and aborts the chain.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := Body(err)
	c.AbortWithStatusJSON(status, body)
}
