package api

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"jobboard/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidator makes validation errors report JSON field names.
func registerValidator() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// bindJSON decodes and validates the body, turning every failure into a
// validation apperr with per-field messages.
func bindJSON(c *gin.Context, dest any) error {
	const op = "api.bindJSON"

	err := c.ShouldBindJSON(dest)
	if err == nil {
		return nil
	}

	var (
		errs    apperr.FieldErrors
		invalid validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &invalid):
		for _, fe := range invalid {
			errs.Add(fieldPath(fe), fieldMessage(fe))
		}
	case errors.Is(err, io.EOF):
		errs.Add("body", "is required")
	case errors.As(err, &typeErr):
		errs.Add(typeErr.Field, "must be of type "+typeErr.Type.String())
	default:
		errs.Add("body", "must be valid JSON")
	}

	return errs.Err(op)
}

// fieldPath drops the root struct name: statusRequest.scheduleInterview.notes
// becomes scheduleInterview.notes.
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
