// Package validation applies declarative `validate` struct tags to request
// payloads and reports the outcome as a Result instead of an error chain.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is a single failed rule. Field is the JSON name of the field.
type Violation struct {
	Field string
	Rule  string
}

// Result is the outcome of validating one payload. The zero value is valid.
type Result struct {
	Violations []Violation
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Has reports whether any field failed rule.
func (r Result) Has(rule string) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// HasField reports whether field failed rule.
func (r Result) HasField(field, rule string) bool {
	for _, v := range r.Violations {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

// Missing reports whether a required field was absent.
func (r Result) Missing() bool {
	return r.Has("required")
}

// Validator wraps a shared validator instance. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{v: v}
}

// Check validates payload, which must be a struct or a pointer to one. The
// error is non-nil only when payload itself cannot be validated.
func (v *Validator) Check(payload any) (Result, error) {
	err := v.v.Struct(payload)
	if err == nil {
		return Result{}, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{}, err
	}
	res := Result{Violations: make([]Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		res.Violations = append(res.Violations, Violation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return res, nil
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}
