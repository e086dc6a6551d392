// Package validation checks request payloads at the transport boundary and
// strips markup from free text before it reaches storage.
package validation

import (
	"errors"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/categories"
)

// FieldError names one failing field by its JSON name and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error is returned by Validator.Struct when a payload is malformed.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " failed " + f.Rule
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator wraps go-playground/validator with the reason category set bound
// in as the `reasoncategory` tag. The `text` tag rejects strings that are
// empty once markup is stripped.
type Validator struct {
	validate *validator.Validate
}

func New(reasons *categories.Registry, sanitizer *Sanitizer) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("reasoncategory", func(fl validator.FieldLevel) bool {
		return reasons.Exists(fl.Field().String())
	})
	_ = v.RegisterValidation("text", func(fl validator.FieldLevel) bool {
		return sanitizer.Sanitize(fl.Field().String()) != ""
	})
	return &Validator{validate: v}
}

// Struct validates s. Field failures come back as *Error.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// Sanitizer removes every HTML element from text. Contents of script and
// style elements are dropped along with the tags. The result is plain text,
// so entities the policy escapes are decoded again.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *Sanitizer) Sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}
