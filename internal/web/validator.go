package web

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/healthify/portal/internal/platform/fhir"
)

var messages = map[string]string{
	"required": "is required",
	"max":      "must be at most %s characters",
	"min":      "must be at least %s characters",
	"url":      "must be a valid URL",
	"email":    "must be a valid email address",
	"fhirdate": "must be a date in YYYY-MM-DD form",
	"lkphone":  "must be a Sri Lankan phone number",
}

var lkPhone = regexp.MustCompile(`^(\+94|0)\d{9}$`)

// Validator adapts validator/v10 to echo.Validator. Field names in messages
// come from the form tag.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("fhirdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) == len("2006-01-02") && fhir.ValidateDate(s)
	})
	_ = v.RegisterValidation("lkphone", func(fl validator.FieldLevel) bool {
		return lkPhone.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// FieldErrors maps each invalid form field to its message. Errors that are
// not validation failures yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

// ValidationMessage joins every failure into one sentence.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" "+message(fe))
	}
	return strings.Join(parts, ", ")
}

func message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(msg, "%s") {
		msg = strings.Replace(msg, "%s", fe.Param(), 1)
	}
	return msg
}
