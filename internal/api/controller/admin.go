package controller

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
	"github.com/ougirez/malaria-analytics/internal/pkg/utils"
)

// LoginAdmin trades the configured secret for an admin token, returned in the
// body and as the secret cookie.
func (c *Controller) LoginAdmin(ctx echo.Context) error {
	var req struct {
		Secret string `json:"secret" validate:"required"`
	}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if c.auth.Secret == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(c.auth.Secret)) != 1 {
		return constants.ErrUnauthorized
	}

	token, err := utils.GenerateAuthToken(utils.RoleAdmin, c.auth.TokenTTL, []byte(c.auth.Secret))
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySecretToken,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(c.auth.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return ctx.JSON(http.StatusOK, map[string]string{"token": token})
}

func (c *Controller) GetHeuristics(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.service.Heuristics())
}
