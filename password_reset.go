package session

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// PasswordForgottenForm requests a password reset mail. It surfaces a
// success indicator only and never touches session state.
type PasswordForgottenForm struct {
	Email string `form:"email" json:"email"`

	Failed      bool
	Succeeded   bool
	FieldErrors map[string]string

	auth   AuthService
	submit submission
	logger Logger
}

// NewPasswordForgottenForm wires the form to the auth service.
func NewPasswordForgottenForm(auth AuthService) *PasswordForgottenForm {
	return &PasswordForgottenForm{
		auth:   auth,
		logger: defLogger{},
	}
}

// Validate will run validation rules
func (f *PasswordForgottenForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(
			&f.Email,
			validation.Required,
			is.Email,
		),
	)
}

// InFlight reports whether a submission is pending.
func (f *PasswordForgottenForm) InFlight() bool {
	return f.submit.InFlight()
}

// Submit validates the address and requests the reset. Failures are kept
// local to the form.
func (f *PasswordForgottenForm) Submit(ctx context.Context) error {
	if err := f.Validate(); err != nil {
		f.FieldErrors = FormatValidationErrorToMap(err)
		return ErrInvalidForm
	}
	f.FieldErrors = nil

	if !f.submit.begin() {
		return ErrSubmissionInFlight
	}
	defer f.submit.end()

	if err := f.auth.RequestPasswordReset(ctx, f.Email); err != nil {
		f.logger.Error("password reset request failed: %s", err)
		f.Failed = true
		return ErrAuthenticationFailed
	}

	f.Failed = false
	f.Succeeded = true
	return nil
}
