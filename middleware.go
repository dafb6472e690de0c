package session

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// RejectedRouteCookie remembers the path a denied navigation targeted so a
// later login can return to it.
const RejectedRouteCookie = "shig_rejected_route"

// GuardMiddleware adapts a Guard into go-router middleware for
// server-rendered shig frontends. The guard's redirect is issued as an HTTP
// redirect and the rejected path is remembered in a short-lived cookie.
func GuardMiddleware(guard *Guard) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			route := NewRoute(c.OriginalURL(), nil)

			decision := guard.Decide(route)
			if decision.Allowed() {
				return next(c)
			}

			setRejectedRoute(c)

			target := LoginRoute
			if len(decision.Redirect) > 0 {
				target = joinPath(decision.Redirect)
			}

			status := http.StatusSeeOther
			if c.Method() == string(router.GET) {
				status = http.StatusFound
			}
			return c.Redirect(target, status)
		}
	}
}

// GetRedirect consumes the remembered rejected route, or def when none is
// set.
func GetRedirect(c router.Context, def string) string {
	target := c.Cookies(RejectedRouteCookie)
	if target == "" {
		return def
	}
	clearRejectedRoute(c)
	return target
}

func setRejectedRoute(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     RejectedRouteCookie,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func clearRejectedRoute(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     RejectedRouteCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * 24),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
