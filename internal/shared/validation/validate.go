// Package validation wraps go-playground/validator with the project's custom
// rules and JSON field naming.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate

	controlFamilyPattern = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// FieldError describes one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Error is returned by Struct when one or more rules fail.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msg := f.Field + " failed " + f.Rule
		if f.Param != "" {
			msg += "=" + f.Param
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("controlfamily", func(fl validator.FieldLevel) bool {
			return controlFamilyPattern.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Details returns the field errors carried by err, if any.
func Details(err error) []FieldError {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
