package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator builds the shared validator. Field names in error
// messages come from json tags so responses speak the wire vocabulary,
// not Go struct names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct validates s and converts the first failure into a
// caller-facing message in the "Missing required field: x" shape the
// clients already expect.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("Missing required field: '%s'", fe.Field())
	case "gt":
		return fmt.Errorf("Invalid value for field '%s': must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Errorf("Invalid value for field '%s': must be at least %s", fe.Field(), fe.Param())
	case "base64":
		return fmt.Errorf("Invalid value for field '%s': not valid base64", fe.Field())
	case "email":
		return fmt.Errorf("Invalid value for field '%s': not a valid email address", fe.Field())
	default:
		return fmt.Errorf("Invalid value for field '%s'", fe.Field())
	}
}
