package session

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
)

// RedirectSource yields the route a successful login should land on, e.g.
// Router.ConsumeRedirect. When nil the default landing route is used.
type RedirectSource func(def string) string

// LoginForm is the credential login flow. Field state is bound by the UI,
// validation runs on demand, and Submit performs at most one external call
// per invocation while suppressing duplicate submits.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`

	// Failed flags the last submission as rejected by the auth service.
	Failed bool
	// FieldErrors carries validation messages keyed by field name.
	FieldErrors map[string]string

	session   *Service
	auth      AuthService
	nav       Navigator
	redirects RedirectSource
	landing   string
	submit    submission
	logger    Logger
	debug     bool
}

// LoginFormOption customizes a LoginForm.
type LoginFormOption func(*LoginForm)

// WithLoginRedirects sets where a successful login navigates to.
func WithLoginRedirects(redirects RedirectSource) LoginFormOption {
	return func(f *LoginForm) {
		f.redirects = redirects
	}
}

// WithLoginConfig reads the landing route for successful logins from cfg.
func WithLoginConfig(cfg Config) LoginFormOption {
	return func(f *LoginForm) {
		if cfg != nil && cfg.GetDefaultRoute() != "" {
			f.landing = cfg.GetDefaultRoute()
		}
	}
}

// WithLoginLogger overrides the form logger.
func WithLoginLogger(logger Logger) LoginFormOption {
	return func(f *LoginForm) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithLoginDebug dumps submitted payloads to the logger.
func WithLoginDebug(debug bool) LoginFormOption {
	return func(f *LoginForm) {
		f.debug = debug
	}
}

// NewLoginForm wires the form to its collaborators.
func NewLoginForm(session *Service, auth AuthService, nav Navigator, opts ...LoginFormOption) *LoginForm {
	f := &LoginForm{
		session: session,
		auth:    auth,
		nav:     nav,
		landing: DefaultLandingRoute,
		logger:  defLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Validate will run validation rules
func (f *LoginForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(
			&f.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&f.Password,
			validation.Required,
		),
	)
}

// Users returns the known identities for form population; failures already
// degraded to an empty list inside the service.
func (f *LoginForm) Users(ctx context.Context) []User {
	return f.session.GetUsers(ctx)
}

// InFlight reports whether a submission is pending.
func (f *LoginForm) InFlight() bool {
	return f.submit.InFlight()
}

// Submit validates the fields and performs the external login. On success
// the session is mutated and navigation continues to the remembered denied
// route or the default landing route. Every failure path is captured into
// form state; the returned error mirrors it for callers that want one.
func (f *LoginForm) Submit(ctx context.Context) error {
	if err := f.Validate(); err != nil {
		f.FieldErrors = FormatValidationErrorToMap(err)
		return ErrInvalidForm
	}
	f.FieldErrors = nil

	if !f.submit.begin() {
		return ErrSubmissionInFlight
	}
	defer f.submit.end()

	creds := Credentials{Email: f.Email, Password: f.Password}
	if f.debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(creds))
		fmt.Println("=========================")
	}

	// Capture the session generation before the request leaves so a logout
	// in between voids the result.
	epoch := f.session.Epoch()

	result, err := f.auth.Login(ctx, creds)
	if err != nil {
		f.logger.Error("login rejected: %s", err)
		f.Failed = true
		return ErrAuthenticationFailed
	}

	name := result.DisplayName
	if name == "" {
		name = creds.Email
	}

	if !f.session.ApplyLogin(name, result.Token, epoch) {
		f.Failed = true
		return ErrSessionSuperseded
	}

	f.Failed = false

	target := f.landing
	if f.redirects != nil {
		target = f.redirects(f.landing)
	}
	if f.nav != nil {
		f.nav.Navigate(target)
	}
	return nil
}

// Login is the legacy name-only quick login: a viewer picks a display name
// without an account. Empty names are a no-op, mirroring the original form.
func (f *LoginForm) Login(name string) bool {
	if name == "" {
		return false
	}
	if !f.session.SetUserName(name) {
		return false
	}
	if f.nav != nil {
		f.nav.Navigate("")
	}
	return true
}
