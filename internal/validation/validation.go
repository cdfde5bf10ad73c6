// Package validation turns struct-tag rule violations into field level messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Error carries the messages for every rejected field, keyed by the JSON field name.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "invalid form data: " + strings.Join(parts, "; ")
}

// Add records a message for field.
func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns nil when no field was rejected.
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func IsValidation(err error) bool {
	var v *Error
	return errors.As(err, &v)
}

// FieldErrors extracts the field map from err, or nil.
func FieldErrors(err error) map[string][]string {
	var v *Error
	if errors.As(err, &v) {
		return v.Fields
	}
	return nil
}

// Cents reports whether d is a whole number of paisa, at most two decimal places.
func Cents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimals are checked by their float value so gt/gte rules apply to money
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.InexactFloat64()
	}, decimal.Decimal{})
	return v
}

// Struct validates s and converts failures to *Error. Messages come from the
// optional `msg` tag on the field, else a generic rule description.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &Error{}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range ves {
		out.Add(fe.Field(), message(t, fe))
	}
	return out
}

func message(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if m := f.Tag.Get("msg"); m != "" {
			return m
		}
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
