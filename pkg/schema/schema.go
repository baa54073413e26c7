// Package schema checks values against the `validate` tags of API types.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Check validates v.
//
// v can be a struct, a pointer to struct, or a slice of them.
// Other values are always valid.
func Check(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := Check(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item #%d: %w", i, err)
			}
		}
	}
	return nil
}

// Fields converts validation errors into a payload of field errors.
//
// When err is not from validation, it returns false.
func Fields(err error) (apierr.Payload, bool) {
	ve := validator.ValidationErrors{}
	if !errors.As(err, &ve) {
		return apierr.Payload{}, false
	}

	p := apierr.Payload{}
	for _, fe := range ve {
		p = p.With(fe.Field(), Message(fe))
	}
	return p, true
}

// Message says why the field is rejected, in the manner of the API.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "oneof":
		return fmt.Sprintf(`"%v" is not a valid choice. (choose from: %s)`, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	}
	return fmt.Sprintf("invalid value (%s).", fe.Tag())
}
