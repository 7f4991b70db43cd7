// Package contact validates contact form submissions and relays them to the
// site owner by email, with a confirmation copy to the visitor.
package contact

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Client-facing error strings.
const (
	MsgAllFieldsRequired = "All fields are required"
	MsgInvalidEmail      = "Invalid email format"
	MsgSendFailed        = "Failed to send email"
	MsgSent              = "Email sent successfully"
)

// Submission is one contact form post. It lives for a single request.
type Submission struct {
	Email   string `form:"email"   validate:"required,contact_email"`
	Subject string `form:"subject" validate:"required"`
	Message string `form:"message" validate:"required"`
}

// ErrFieldsRequired and ErrInvalidEmail are the two ways a submission can be
// rejected. Both map to a 400.
var (
	ErrFieldsRequired = errors.New(MsgAllFieldsRequired)
	ErrInvalidEmail   = errors.New(MsgInvalidEmail)
)

// emailPattern: no whitespace or @ in the local part, domain or TLD, and a
// dot somewhere after the @. Whitespace covers every Unicode space, not just
// the ASCII set matched by \s.
var emailPattern = regexp.MustCompile(`^[^\s\v\x{85}\p{Z}\x{FEFF}@]+@[^\s\v\x{85}\p{Z}\x{FEFF}@]+\.[^\s\v\x{85}\p{Z}\x{FEFF}@]+$`)

// ValidEmail reports whether s has the shape local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validator checks submissions. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the contact_email rule.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate returns ErrFieldsRequired when any field is empty, otherwise
// ErrInvalidEmail when the address is malformed. A missing field takes
// precedence over a malformed address.
func (v *Validator) Validate(s Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrFieldsRequired
		}
	}
	return ErrInvalidEmail
}
