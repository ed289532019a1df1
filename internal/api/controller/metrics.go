package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/domain/dto"
)

func (c *Controller) Pearson(ctx echo.Context) error {
	var req dto.PearsonRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	result, err := c.service.Correlate(req.X, req.Y)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

func (c *Controller) Effectiveness(ctx echo.Context) error {
	var req dto.EffectivenessRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	type response struct {
		Points                []domain.CorrelationPoint   `json:"points"`
		Metrics               domain.EffectivenessMetrics `json:"metrics"`
		SeverityEffectiveness map[domain.Severity]float64 `json:"severityEffectiveness"`
	}

	var (
		resp response
		err  error
	)

	resp.Points, err = c.service.CorrelationPoints(req.Trends(), req.AlertStatistics.DailyCounts)
	if err != nil {
		return err
	}
	resp.Metrics, err = c.service.AggregateEffectiveness(resp.Points, req.AlertStatistics)
	if err != nil {
		return err
	}
	resp.SeverityEffectiveness, err = c.service.SeverityEffectiveness(req.AlertStatistics)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) RiskDistribution(ctx echo.Context) error {
	var req dto.RiskRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	dist, err := c.service.RiskDistribution(req.Trends())
	if err != nil {
		return err
	}

	type response struct {
		Distribution    domain.RiskDistribution `json:"distribution"`
		TotalPopulation int64                   `json:"totalPopulation"`
	}

	return ctx.JSON(http.StatusOK, response{Distribution: dist, TotalPopulation: dist.TotalPopulation()})
}

func (c *Controller) VulnerabilityIndicators(ctx echo.Context) error {
	var req dto.RiskRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	indicators, err := c.service.VulnerabilityIndicators(req.Trends())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}
