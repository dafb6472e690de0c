// Package session implements the client-side session and access-control core
// shared by shig front-ends: the credential store, the reactive session state
// service, route access guards, the auth flow forms, and the lobby entry
// resolver.
//
// Session state:
//   - CredentialStore owns the persisted identity record (display name plus
//     access token) on top of a pluggable Storage backend. Persistence
//     failures degrade to an in-memory identity so the client stays usable.
//   - Service wraps the store and exposes replay-last-value signals for
//     "is a session active" and "current display name". Every subscriber,
//     including late ones, observes the latest identity after a mutation.
//
// Access guards:
//   - Guard policies are plain functions from a session snapshot and a target
//     route to an allow/deny decision. UserRouteAccessGuard requires an
//     active session; UserAccessGuard additionally requires the admin role.
//     Denied navigations trigger exactly one redirect to the login route.
//     Adapters expose the same policies as go-router and fiber middleware.
//
// Auth flows:
//   - LoginForm, SignupForm, and PasswordForgottenForm validate their fields
//     eagerly, make at most one external call per submission, suppress
//     duplicate submits while a request is in flight, and capture failures
//     into local state instead of propagating across async boundaries.
//
// Lobby entry:
//   - LobbyEntry assembles the join parameters (stream id, space id, user
//     token, display name) a stream join needs, recomputed per navigation.
package session
