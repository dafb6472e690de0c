package session

import (
	"errors"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FormatValidationErrorToMap flattens an ozzo validation error into a
// field→message map for display. Non-field errors land under "form".
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			if fieldErr != nil {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

// ValidateUserName checks a display name ahead of a session mutation.
func ValidateUserName(name string) error {
	if err := validation.Validate(name, validation.Required); err != nil {
		return ErrEmptyUserName
	}
	return nil
}

// ValidateStringEquals builds a rule that requires the value to equal str,
// used for password confirmation fields.
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

// submission serializes form submits: at most one request is in flight per
// form instance, later attempts are ignored until the first one resolves.
type submission struct {
	mu       sync.Mutex
	inFlight bool
}

// begin reports whether the caller acquired the in-flight slot.
func (s *submission) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *submission) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// InFlight reports whether a submission is currently pending.
func (s *submission) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}
