package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/domain/dto"
)

func (c *Controller) ValidateRequest(ctx echo.Context) error {
	var req dto.AnalyticsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	validated, err := c.service.ValidateRequest(req.ToDomain())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, validated)
}

func (c *Controller) GetPayload(ctx echo.Context) error {
	var req dto.AnalyticsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	payload, err := c.service.Payload(ctx.Request().Context(), req.ToDomain())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, payload)
}

func (c *Controller) ValidatePayload(ctx echo.Context) error {
	var payload domain.AnalyticsPayload
	if err := ctx.Bind(&payload); err != nil {
		return err
	}

	validated, err := c.service.ValidatePayload(&payload)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, validated)
}

func (c *Controller) GetDashboard(ctx echo.Context) error {
	var req dto.DashboardRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	dashboard, err := c.service.Dashboard(ctx.Request().Context(), req.AnalyticsRequest.ToDomain(), req.Specs())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dashboard)
}
