package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// MinPassoutYear bounds the passout year from below.
const MinPassoutYear = 1950

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form. ConfirmPassword never leaves the client.
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	PassoutYear     int    `json:"passoutYear" validate:"required,gte=1950,lte=2100"`
}

// RegistrationResult is what the API answers to a registration.
type RegistrationResult struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left out
// of the request and stay unchanged on the server.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitnil,min=1"`
	LastName  *string `json:"lastName,omitempty" validate:"omitnil,min=1"`
	Headline  *string `json:"headline,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Company   *string `json:"company,omitempty"`
}

// NewJob is the post-a-job form.
type NewJob struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ApplyURL    string `json:"apply_url,omitempty" validate:"omitempty,url"`
}

// OTPVerification is the verify-code form.
type OTPVerification struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric,len=6"`
}

// ErrInvalidForm matches every error returned from Validate.
var ErrInvalidForm = errors.New("invalid form")

// FormError is a failed local check. Message is meant for the user.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

func (e *FormError) Unwrap() error { return ErrInvalidForm }

// Validate checks v against its struct tags and reports the first failure.
func Validate(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return &FormError{Message: describe(verrs[0])}
}

func describe(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Field() == "Password" {
			return fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
		}
		return field + " must not be empty"
	case "eqfield":
		return "Passwords do not match"
	case "gte", "lte":
		return fmt.Sprintf("%s must be between %d and 2100", field, MinPassoutYear)
	case "len", "numeric":
		return field + " must be a 6-digit code"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}

// humanize turns a Go field name into words: "PassoutYear" -> "Passout year".
func humanize(name string) string {
	if name == "OTP" {
		return "Code"
	}
	var b strings.Builder
	prevLower := false
	for i, r := range name {
		upper := unicode.IsUpper(r)
		if upper && prevLower {
			b.WriteByte(' ')
		}
		if i > 0 {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		prevLower = !upper
	}
	return b.String()
}
