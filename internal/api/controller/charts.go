package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/domain/dto"
	"github.com/ougirez/malaria-analytics/internal/service/chart"
)

func (c *Controller) ResolveChart(ctx echo.Context) error {
	var req dto.ChartRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	data, err := c.service.ResolveChart(ctx.Request().Context(), req.ToDomain())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, data)
}

func (c *Controller) GetSeries(ctx echo.Context) error {
	var req dto.SeriesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	points, err := c.service.Series(ctx.Request().Context(), req.DataType, req.AnalyticsRequest.ToDomain(), req.Config())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, points)
}

// GetCompatibility lists the data types each chart type accepts.
func (c *Controller) GetCompatibility(ctx echo.Context) error {
	chartTypes := []domain.ChartType{
		domain.ChartTypeLine,
		domain.ChartTypeBar,
		domain.ChartTypePie,
		domain.ChartTypeScatter,
	}

	resp := make(map[domain.ChartType][]domain.DataType, len(chartTypes))
	for _, ct := range chartTypes {
		resp[ct] = chart.AllowedDataTypes(ct)
	}

	return ctx.JSON(http.StatusOK, resp)
}
