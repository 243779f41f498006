package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"appfiy/backoffice/internal/common"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrUnknownField = errors.New("field is not editable")
)

// ValidationError carries one message per offending field. Handlers turn it
// into a 422 with an errors map.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func newFieldError(field, message string, cause error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}, cause: cause}
}

// versionError turns a codec failure into a field error on field.
func versionError(field string, err error) error {
	var parseErr *common.VersionParseError
	if errors.As(err, &parseErr) {
		return newFieldError(field, parseErr.Error(), err)
	}
	return err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return jsonName(f.Name)
		}
		return name
	})
	return v
}

// validateStruct runs validator tags and reports failures keyed by the
// json name of each field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields, cause: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + jsonName(fe.Param()) + " is absent"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}

// jsonName converts a Go field name such as IOSNotificationContent into
// ios_notification_content. Used for required_without params, which name
// the Go field.
func jsonName(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			prevUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			if prevLower || (prevUpper && nextLower) {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
