package http

import (
	"context"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// actorContextKey keys the resolved actor in the request context.
type actorContextKey struct{}

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// ActorMiddleware resolves the acting user from the request headers and puts
// it on the request context. Requests without actor headers pass through
// untouched: whether an actor is required is decided per endpoint.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Request().Header.Get(headerActorID)
			rawRole := c.Request().Header.Get(headerActorRole)
			if rawID == "" && rawRole == "" {
				return next(c)
			}

			id, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return next(c)
			}
			role, err := kernel.RoleFromString(rawRole)
			if err != nil {
				return next(c)
			}
			actor, err := kernel.NewActor(id, role)
			if err != nil {
				return next(c)
			}

			ctx := context.WithValue(c.Request().Context(), actorContextKey{}, actor)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// ContextActorProvider resolves the current actor from the request context
// populated by ActorMiddleware.
type ContextActorProvider struct{}

// CurrentActor returns the actor on the context, or an authorization error
// when the request carried no recognizable actor.
func (ContextActorProvider) CurrentActor(ctx context.Context) (kernel.Actor, error) {
	actor, ok := ctx.Value(actorContextKey{}).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errs.NewAuthorizationError("no actor selected")
	}
	return actor, nil
}
