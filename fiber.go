package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GuardHandler adapts a Guard into a native fiber handler, for frontends
// built directly on fiber rather than go-router.
func GuardHandler(guard *Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route := NewRoute(c.OriginalURL(), c.AllParams())

		decision := guard.Decide(route)
		if decision.Allowed() {
			return c.Next()
		}

		c.Cookie(&fiber.Cookie{
			Name:     RejectedRouteCookie,
			Value:    c.OriginalURL(),
			Expires:  time.Now().Add(time.Minute * 5),
			HTTPOnly: true,
			Secure:   true,
			SameSite: "Lax",
		})

		target := LoginRoute
		if len(decision.Redirect) > 0 {
			target = joinPath(decision.Redirect)
		}

		status := fiber.StatusSeeOther
		if c.Method() == fiber.MethodGet {
			status = fiber.StatusFound
		}
		return c.Redirect(target, status)
	}
}

// FiberRoute builds a Route from a fiber context, exposing the matched path
// parameters to policies and the lobby resolver.
func FiberRoute(c *fiber.Ctx) Route {
	return NewRoute(c.OriginalURL(), c.AllParams())
}
