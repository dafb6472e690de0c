package session

import (
	"time"
)

// GuardDecisionTimeout is the bounded wait for the authenticated signal. A
// signal that produces no value inside the window resolves to Denied so a
// navigation can never hang on a stuck guard.
const GuardDecisionTimeout = 2 * time.Second

// SessionReader is the slice of the session service a guard consumes.
type SessionReader interface {
	SubscribeActive(fn func(active bool)) (cancel func())
	SessionRole() UserRole
}

// GuardState is the decision state of one navigation attempt.
type GuardState int

const (
	// GuardPending means no decision has been made yet.
	GuardPending GuardState = iota
	// GuardAllowed lets the navigation proceed, no side effect.
	GuardAllowed
	// GuardDenied cancels the navigation and redirects.
	GuardDenied
)

// Decision is the outcome of evaluating a policy for one navigation.
type Decision struct {
	State    GuardState
	Redirect []string
}

// Allowed reports whether the navigation may proceed.
func (d Decision) Allowed() bool {
	return d.State == GuardAllowed
}

// Snapshot is the live session state a policy decides on.
type Snapshot struct {
	Active bool
	Role   UserRole
}

// Policy maps a session snapshot and a target route to a decision. Policies
// are pure and separately testable from the router plumbing.
type Policy func(snap Snapshot, route Route) Decision

// RequireUser allows any active session.
func RequireUser(snap Snapshot, _ Route) Decision {
	if snap.Active {
		return Decision{State: GuardAllowed}
	}
	return Decision{State: GuardDenied, Redirect: []string{LoginRoute}}
}

// RequireAdmin allows an active session holding the admin role.
func RequireAdmin(snap Snapshot, _ Route) Decision {
	if snap.Active && IsAdmin(snap.Role) {
		return Decision{State: GuardAllowed}
	}
	return Decision{State: GuardDenied, Redirect: []string{LoginRoute}}
}

// Guard evaluates a policy against the live session state and performs the
// redirect side effect on denial. One Decide call yields exactly one
// decision and at most one redirect.
type Guard struct {
	session SessionReader
	nav     Navigator
	policy  Policy
	timeout time.Duration
	logger  Logger
}

// GuardOption customizes a Guard.
type GuardOption func(*Guard)

// WithGuardTimeout overrides the bounded decision wait.
func WithGuardTimeout(timeout time.Duration) GuardOption {
	return func(g *Guard) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// WithGuardLogger overrides the guard logger.
func WithGuardLogger(logger Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGuardPolicy replaces the policy, for product-specific variants.
func WithGuardPolicy(policy Policy) GuardOption {
	return func(g *Guard) {
		if policy != nil {
			g.policy = policy
		}
	}
}

// NewUserRouteAccessGuard guards routes that need any active session.
func NewUserRouteAccessGuard(session SessionReader, nav Navigator, opts ...GuardOption) *Guard {
	return newGuard(session, nav, RequireUser, opts...)
}

// NewUserAccessGuard guards routes that need an active admin session. Kept
// separate from NewUserRouteAccessGuard on purpose: the two guards of the
// original client have overlapping but not identical responsibilities.
func NewUserAccessGuard(session SessionReader, nav Navigator, opts ...GuardOption) *Guard {
	return newGuard(session, nav, RequireAdmin, opts...)
}

func newGuard(session SessionReader, nav Navigator, policy Policy, opts ...GuardOption) *Guard {
	g := &Guard{
		session: session,
		nav:     nav,
		policy:  policy,
		timeout: GuardDecisionTimeout,
		logger:  defLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide evaluates the policy against the live session state. Timeouts and
// panicking policies resolve to Denied.
func (g *Guard) Decide(route Route) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("guard policy panicked, denying navigation: %v", r)
			decision = Decision{State: GuardDenied, Redirect: []string{LoginRoute}}
		}
	}()

	snap, err := g.snapshot()
	if err != nil {
		g.logger.Error("could not determine session state, denying navigation: %s", err)
		return Decision{State: GuardDenied, Redirect: []string{LoginRoute}}
	}

	return g.policy(snap, route)
}

// CanActivate makes the decision for one navigation attempt and, on denial,
// issues the single redirect. The guarded route must not be entered when it
// returns false.
func (g *Guard) CanActivate(route Route) bool {
	decision := g.Decide(route)
	if decision.Allowed() {
		return true
	}
	if g.nav != nil && len(decision.Redirect) > 0 {
		g.nav.Navigate(decision.Redirect...)
	}
	return false
}

// snapshot reads the latest authenticated state at decision time, never a
// cached value. The bounded wait covers signal sources that fail to emit.
func (g *Guard) snapshot() (Snapshot, error) {
	states := make(chan bool, 1)
	cancel := g.session.SubscribeActive(func(active bool) {
		select {
		case states <- active:
		default:
		}
	})
	defer cancel()

	select {
	case active := <-states:
		return Snapshot{Active: active, Role: g.session.SessionRole()}, nil
	case <-time.After(g.timeout):
		return Snapshot{}, ErrGuardTimeout
	}
}
