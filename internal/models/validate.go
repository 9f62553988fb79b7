package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Field names in errors come from
// json tags so that a reported path matches the wire shape.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldViolation describes one field that failed its declared constraint.
type FieldViolation struct {
	// Field is the JSON path of the offending field, e.g. "splits[1].user".
	Field string `json:"field"`

	// Constraint is a human-readable description of the violated rule.
	Constraint string `json:"constraint"`
}

// ValidationError reports that an entity failed construction. The entity is
// never partially produced: any violation rejects the whole operation.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Constraint)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field ValidationError. Used by services
// for constraints that span entities (e.g. an unknown group reference).
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Constraint: constraint}}}
}

// Validate checks an entity against its declared field constraints and
// returns a *ValidationError listing every violation, or nil.
func Validate(entity any) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: caller passed a non-struct.
		return NewValidationError("", err.Error())
	}
	ve := &ValidationError{Violations: make([]FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		ve.Violations = append(ve.Violations, FieldViolation{
			Field:      fieldPath(fe),
			Constraint: constraintMessage(fe),
		})
	}
	return ve
}

// fieldPath strips the leading struct name from the validator namespace:
// "Expense.splits[0].user" -> "splits[0].user".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "alpha":
		return "must contain only letters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed constraint " + fe.Tag()
	}
}
