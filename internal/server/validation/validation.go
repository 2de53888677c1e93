// Package validation checks request payloads and turns failures into the
// field-keyed message maps returned to API clients.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

// RegisterInput is the payload of POST /register.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=30,bcryptlen"`
}

// Normalize trims surrounding whitespace from name and email.
func (in *RegisterInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

// LoginInput is the payload of POST /login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Normalize() {
	in.Email = strings.TrimSpace(in.Email)
}

// Errors maps a field name to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var messages = map[string]map[string]string{
	"name": {
		"required": "Name field is required",
		"min":      "Name must be between 2 and 30 characters",
		"max":      "Name must be between 2 and 30 characters",
	},
	"email": {
		"required": "Email field is required",
		"email":    "Email is invalid",
	},
	"password": {
		"required":  "Password field is required",
		"min":       "Password must be at least 6 characters",
		"max":       "Password must be at most 30 characters",
		"bcryptlen": "Password is too long",
	},
}

// Validator wraps a configured go-playground validator. It is safe for
// concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// max counts runes; bcrypt limits bytes.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= auth.MaxPasswordBytes
	})
	return &Validator{v: v}
}

// Struct validates s and returns nil or an Errors value.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	if m, ok := messages[field][tag]; ok {
		return m
	}
	if field == "" {
		return "Value is invalid"
	}
	return strings.ToUpper(field[:1]) + field[1:] + " is invalid"
}
