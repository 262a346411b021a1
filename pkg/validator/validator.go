package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

// ValidationError wraps every failed field of one struct.
type ValidationError struct {
	Fields []*ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("field '%s' failed on tag '%s'", f.FailedField, f.Tag))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = validator.New()

// RegisterStringRule adds a custom tag that checks a string field with fn.
// Empty strings are left to required/omitempty.
func RegisterStringRule(tag string, fn func(string) bool) {
	if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || fn(s)
	}); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []*ErrorResponse{{FailedField: "", Tag: err.Error()}}
		}
		for _, err := range verrs {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errs = append(errs, &element)
		}
	}
	return errs
}

// Validate returns a *ValidationError when data fails its validate tags, nil otherwise.
func Validate(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
