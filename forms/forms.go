// Package forms declares the submission schemas and turns validator
// failures into one message per field.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate  = newValidator()
	yearRegex = regexp.MustCompile(`^\d{4}$`)
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidationError maps json field names to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// schema is implemented by every form. Messages are looked up as
// "field.tag" first and then "field".
type schema interface {
	messages() map[string]string
}

// Validate checks form against its validate tags without touching any
// backend.
func Validate(form schema) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := form.messages()
	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		if msg, ok := messages[name+"."+fe.Tag()]; ok {
			fields[name] = msg
		} else if msg, ok := messages[name]; ok {
			fields[name] = msg
		} else {
			fields[name] = fe.Error()
		}
	}
	return &ValidationError{Fields: fields}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		return yearRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return nameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	return v
}

// strongPassword requires upper and lower case letters, a digit and a
// symbol, and no whitespace.
func strongPassword(password string) bool {
	var upper, lower, number, special bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			number = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && number && special
}
