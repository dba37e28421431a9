package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form schemas for the browser surface. Field names follow the submitted
// form keys; every field is mandatory.

type registerForm struct {
	UserID          string `form:"user_id"    validate:"required"`
	UserName        string `form:"user_name"  validate:"required"`
	Password        string `form:"user_pw"    validate:"required"`
	PasswordConfirm string `form:"user_pw_re" validate:"required,eqfield=Password"`
}

type loginForm struct {
	UserID   string `form:"user_id" validate:"required"`
	Password string `form:"user_pw" validate:"required"`
}

type newNoteForm struct {
	To      string `form:"to"      validate:"required"`
	Title   string `form:"title"   validate:"required"`
	Content string `form:"content" validate:"required"`
}

// formValidator validates bound form structs and reports failures as a
// field-name → message map suitable for re-rendering the form.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	v := validator.New()
	// Report errors under the submitted field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &formValidator{v: v}
}

// Validate returns nil when the form is valid, otherwise a map of
// field errors. Non-validation errors (bad input types) come back under "".
func (fv *formValidator) Validate(form any) map[string]string {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldError(fe)
	}
	return fields
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "eqfield":
		return field + " must match " + formFieldName(fe)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// formFieldName maps an eqfield parameter (a Go struct field) back to the
// submitted form key it corresponds to.
func formFieldName(fe validator.FieldError) string {
	switch fe.Param() {
	case "Password":
		return "user_pw"
	default:
		return strings.ToLower(fe.Param())
	}
}
