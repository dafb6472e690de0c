package session

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// phoneRegion resolves national phone numbers during signup validation.
// shig instances are region-configured; DE matches the reference deployment.
var phoneRegion = "DE"

// SignupForm is the account registration flow. On success the user is sent
// to the login route; the session is never mutated here.
type SignupForm struct {
	User           string `form:"user" json:"user"`
	Email          string `form:"email" json:"email"`
	Password       string `form:"password" json:"password"`
	PasswordRepeat string `form:"password_repeat" json:"password_repeat"`
	Phone          string `form:"phone" json:"phone"`

	Failed      bool
	Succeeded   bool
	FieldErrors map[string]string

	auth       AuthService
	nav        Navigator
	loginRoute string
	submit     submission
	logger     Logger
}

// SignupFormOption customizes a SignupForm.
type SignupFormOption func(*SignupForm)

// WithSignupConfig reads the login route a successful registration navigates
// to from cfg.
func WithSignupConfig(cfg Config) SignupFormOption {
	return func(f *SignupForm) {
		if cfg != nil && cfg.GetLoginRoute() != "" {
			f.loginRoute = cfg.GetLoginRoute()
		}
	}
}

// NewSignupForm wires the form to its collaborators.
func NewSignupForm(auth AuthService, nav Navigator, opts ...SignupFormOption) *SignupForm {
	f := &SignupForm{
		auth:       auth,
		nav:        nav,
		loginRoute: LoginRoute,
		logger:     defLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Validate will run validation rules
func (f *SignupForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.User, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&f.Password, validation.Required, validation.Length(10, 100)),
		validation.Field(&f.PasswordRepeat, validation.Required, validation.By(ValidateStringEquals(f.Password))),
		validation.Field(&f.Phone, validation.By(validOptionalPhone)),
	)
}

// InFlight reports whether a submission is pending.
func (f *SignupForm) InFlight() bool {
	return f.submit.InFlight()
}

// Submit validates the fields and registers the account. Success navigates
// to the login route. Failures set the Failed flag and never mutate session
// state.
func (f *SignupForm) Submit(ctx context.Context) error {
	if err := f.Validate(); err != nil {
		f.FieldErrors = FormatValidationErrorToMap(err)
		return ErrInvalidForm
	}
	f.FieldErrors = nil

	if !f.submit.begin() {
		return ErrSubmissionInFlight
	}
	defer f.submit.end()

	account := Account{
		User:     f.User,
		Email:    f.Email,
		Password: f.Password,
		Phone:    f.Phone,
	}

	if err := f.auth.RegisterAccount(ctx, account); err != nil {
		f.logger.Error("registration rejected: %s", err)
		f.Failed = true
		return ErrAuthenticationFailed
	}

	f.Failed = false
	f.Succeeded = true
	if f.nav != nil {
		f.nav.Navigate(f.loginRoute)
	}
	return nil
}

func validOptionalPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, phoneRegion)
	if err != nil {
		return errors.New("must be a valid phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}
