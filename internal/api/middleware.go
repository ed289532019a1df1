package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
	"github.com/ougirez/malaria-analytics/internal/pkg/utils"
)

// RequestIDMiddleware reuses a valid incoming X-Request-ID or issues a new
// one, and puts a logger carrying it into the request context.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(constants.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		ctx.Response().Header().Set(constants.HeaderRequestID, id)
		ctx.Set(constants.CtxKeyRequestID, id)

		reqCtx := logger.ToContext(ctx.Request().Context(), constants.CtxKeyRequestID, id)
		ctx.SetRequest(ctx.Request().WithContext(reqCtx))

		return next(ctx)
	}
}

// AdminMiddleware accepts an admin token from the secret cookie or a bearer
// Authorization header.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := bearerToken(ctx)
		if raw == "" {
			cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
			if err != nil {
				return constants.ErrMissingAuthCookie
			}
			raw = cookie.Value
		}

		token, err := utils.ParseAuthToken(raw, []byte(svc.secret))
		if err != nil {
			return err
		}

		if token.Role != utils.RoleAdmin {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
