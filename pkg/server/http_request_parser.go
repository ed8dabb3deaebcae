package server

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tracebase/datamarket/pkg/contract"
)

type HTTPRequestParser struct {
	validator *validator.Validate
}

func NewHTTPRequestParser() *HTTPRequestParser {
	return &HTTPRequestParser{
		validator: NewValidator(),
	}
}

func (p *HTTPRequestParser) ParseQuery(ctx *fiber.Ctx, input interface{}) *contract.Error {
	if err := ctx.QueryParser(input); err != nil {
		return contract.NewError(contract.ErrorCodeBadRequest, err.Error())
	}

	if err := p.validator.Struct(input); err != nil {
		return newErrorFromValidationError(err)
	}

	return nil
}

func dereference(value interface{}) interface{} {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return value
}

func newErrorFromValidationError(err error) *contract.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return contract.NewError(contract.ErrorCodeInternalError, err.Error())
	}

	validationErrors := make([]string, 0, len(errs))
	for _, err := range errs {
		field := err.Field()
		value := dereference(err.Value())

		var vErr string
		switch err.Tag() {
		case "required":
			vErr = fmt.Sprintf("Missing value for required parameter '%s'", field)
		default:
			vErr = fmt.Sprintf("Invalid value %v for parameter '%s' supplied", value, field)
		}
		validationErrors = append(validationErrors, vErr)
	}

	return contract.NewError(
		contract.ErrorCodeInvalidParameterValue, strings.Join(validationErrors, ", "),
	)
}
