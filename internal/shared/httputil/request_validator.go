package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// structRuleTag marks errors reported by a struct level rule; their message travels as the param.
const structRuleTag = "rule"

// ValidationError carries the first failing message of each request field, keyed by json name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// RequestValidator is the gateway's echo.Validator, backed by go-playground/validator.
type RequestValidator struct {
	validate *validator.Validate
	messages map[string]string
}

var _ echo.Validator = (*RequestValidator)(nil)

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return &RequestValidator{validate: v, messages: map[string]string{}}
}

// Message sets the text reported when field fails tag.
func (v *RequestValidator) Message(field, tag, text string) *RequestValidator {
	v.messages[field+"."+tag] = text
	return v
}

// RegisterStructRule runs check on every validated value of type T. check returns the failing
// fields with their messages.
func RegisterStructRule[T any](v *RequestValidator, check func(T) map[string]string) {
	var sample T
	v.validate.RegisterStructValidation(func(sl validator.StructLevel) {
		value, ok := sl.Current().Interface().(T)
		if !ok {
			return
		}
		for field, message := range check(value) {
			sl.ReportError(message, field, field, structRuleTag, message)
		}
	}, sample)
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var failed validator.ValidationErrors
	if !errors.As(err, &failed) {
		return err
	}
	fields := make(map[string]string, len(failed))
	for _, fe := range failed {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = v.message(fe)
	}
	return &ValidationError{Fields: fields}
}

func (v *RequestValidator) message(fe validator.FieldError) string {
	if fe.Tag() == structRuleTag {
		return fe.Param()
	}
	if text, ok := v.messages[fe.Field()+"."+fe.Tag()]; ok {
		return text
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// RespondInvalid writes 422 with the field messages for a *ValidationError and 400 otherwise.
func RespondInvalid(c echo.Context, err error) error {
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": invalid.Error(), "fields": invalid.Fields})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
