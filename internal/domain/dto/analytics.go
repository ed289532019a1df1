// Package dto holds the HTTP request bodies and their conversion into domain
// values. Tags here cover shape only; range rules live in the validators.
package dto

import (
	"time"

	"github.com/ougirez/malaria-analytics/internal/domain"
)

type DateRange struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

func (r DateRange) ToDomain() domain.DateRange {
	return domain.NewDateRange(r.Start, r.End)
}

type AnalyticsRequest struct {
	Region    string                   `json:"region"`
	DateRange DateRange                `json:"dateRange"`
	Filters   *domain.AnalyticsFilters `json:"filters,omitempty"`
}

func (r AnalyticsRequest) ToDomain() domain.AnalyticsRequest {
	return domain.AnalyticsRequest{
		Region:    r.Region,
		DateRange: r.DateRange.ToDomain(),
		Filters:   r.Filters,
	}
}

// ChartSpec is a chart request without region and range, used inside a
// dashboard request.
type ChartSpec struct {
	ChartType domain.ChartType   `json:"chartType" validate:"required"`
	DataType  domain.DataType    `json:"dataType" validate:"required"`
	Style     *domain.ChartStyle `json:"style,omitempty"`
	XFactor   *string            `json:"xFactor,omitempty"`
	YFactor   *string            `json:"yFactor,omitempty"`
}

func (s ChartSpec) ToDomain(region string, dr domain.DateRange) domain.ChartRequestSpec {
	return domain.ChartRequestSpec{
		ChartType: s.ChartType,
		DataType:  s.DataType,
		Region:    region,
		DateRange: dr,
		Style:     s.Style,
		XFactor:   s.XFactor,
		YFactor:   s.YFactor,
	}
}

type ChartRequest struct {
	ChartSpec
	Region    string    `json:"region"`
	DateRange DateRange `json:"dateRange"`
}

func (r ChartRequest) ToDomain() domain.ChartRequestSpec {
	return r.ChartSpec.ToDomain(r.Region, r.DateRange.ToDomain())
}

type DashboardRequest struct {
	AnalyticsRequest
	Charts []ChartSpec `json:"charts" validate:"max=20,dive"`
}

func (r DashboardRequest) Specs() []domain.ChartRequestSpec {
	req := r.AnalyticsRequest.ToDomain()
	specs := make([]domain.ChartRequestSpec, 0, len(r.Charts))
	for _, c := range r.Charts {
		specs = append(specs, c.ToDomain(req.Region, req.DateRange))
	}
	return specs
}

type SeriesRequest struct {
	AnalyticsRequest
	DataType domain.DataType `json:"dataType" validate:"required"`
	Factor   *string         `json:"factor,omitempty"`
	Limit    uint64          `json:"limit,omitempty" validate:"lte=10000"`
}

func (r SeriesRequest) Config() domain.SeriesConfig {
	return domain.SeriesConfig{Factor: r.Factor, Limit: r.Limit}
}
