package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator wraps go-playground/validator so Echo can call
// c.Validate(req) on every bound request body.
type requestValidator struct {
	v *validator.Validate
}

func NewValidator() echo.Validator {
	return &requestValidator{v: validator.New()}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			msgs = append(msgs, field+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is invalid (%s=%s)", field, fe.Tag(), fe.Param()))
	}
	return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
}
