// Package analytics composes validation, chart resolution, correlation and risk
// scoring on top of a data source.
package analytics

import (
	"context"
	"errors"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
	"github.com/ougirez/malaria-analytics/internal/service/chart"
	"github.com/ougirez/malaria-analytics/internal/service/correlation"
	"github.com/ougirez/malaria-analytics/internal/service/risk"
	"github.com/ougirez/malaria-analytics/internal/service/validation"
)

type DataSource interface {
	Fetch(ctx context.Context, region string, dateRange domain.DateRange, filters domain.AnalyticsFilters) (*domain.AnalyticsPayload, error)
	FetchSeries(ctx context.Context, dataType domain.DataType, region string, dateRange domain.DateRange, cfg domain.SeriesConfig) ([]domain.SeriesPoint, error)
}

type Opts struct {
	Limits     config.Limits
	Heuristics config.Heuristics
	// Clock pins "now" for validation. Nil means time.Now.
	Clock validation.Clock
}

type Service struct {
	source     DataSource
	heuristics config.Heuristics
	requests   *validation.RequestValidator
	payloads   *validation.PayloadValidator
	charts     *chart.Resolver
	engine     *correlation.Engine
	scorer     *risk.Scorer
}

func NewService(source DataSource, opts Opts) *Service {
	scorer := risk.NewScorer(opts.Heuristics)
	return &Service{
		source:     source,
		heuristics: opts.Heuristics,
		requests:   validation.NewRequestValidator(opts.Limits, opts.Clock),
		payloads:   validation.NewPayloadValidator(opts.Limits, opts.Clock),
		charts:     chart.NewResolver(scorer),
		engine:     correlation.NewEngine(opts.Heuristics),
		scorer:     scorer,
	}
}

func (s *Service) Heuristics() config.Heuristics {
	return s.heuristics
}

func (s *Service) ValidateRequest(req domain.AnalyticsRequest) (domain.AnalyticsRequest, error) {
	return s.requests.Validate(req)
}

func (s *Service) ValidatePayload(p *domain.AnalyticsPayload) (*domain.AnalyticsPayload, error) {
	return s.payloads.Validate(p)
}

// Payload validates req, fetches its payload and validates that too.
func (s *Service) Payload(ctx context.Context, req domain.AnalyticsRequest) (*domain.AnalyticsPayload, error) {
	req, err := s.requests.Validate(req)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, req)
}

func (s *Service) fetch(ctx context.Context, req domain.AnalyticsRequest) (*domain.AnalyticsPayload, error) {
	p, err := s.source.Fetch(ctx, req.Region, req.DateRange, req.EffectiveFilters())
	if err != nil {
		logger.Errorf(ctx, "analytics.Payload, region-%s: %s", req.Region, err.Error())
		return nil, sourceErr("fetch payload", err)
	}
	return s.payloads.Validate(p)
}

// Series returns raw samples for one data type.
func (s *Service) Series(
	ctx context.Context,
	dataType domain.DataType,
	req domain.AnalyticsRequest,
	cfg domain.SeriesConfig,
) ([]domain.SeriesPoint, error) {
	req, err := s.requests.Validate(req)
	if err != nil {
		return nil, err
	}

	points, err := s.source.FetchSeries(ctx, dataType, req.Region, req.DateRange, cfg)
	if err != nil {
		logger.Errorf(ctx, "analytics.Series, region-%s, data_type-%s: %s", req.Region, dataType, err.Error())
		return nil, sourceErr("fetch series", err)
	}
	return points, nil
}

// ResolveChart fetches the payload for the spec's region and range and
// resolves one chart. Incompatible specs fail before anything is fetched.
func (s *Service) ResolveChart(ctx context.Context, spec domain.ChartRequestSpec) (domain.ChartData, error) {
	if err := chart.CheckSpec(spec); err != nil {
		return nil, err
	}

	p, err := s.Payload(ctx, domain.AnalyticsRequest{Region: spec.Region, DateRange: spec.DateRange})
	if err != nil {
		return nil, err
	}

	return s.Chart(spec, p)
}

// Chart resolves spec against an already validated payload.
func (s *Service) Chart(spec domain.ChartRequestSpec, p *domain.AnalyticsPayload) (domain.ChartData, error) {
	var out domain.ChartData
	err := guard("resolve chart", func() error {
		var err error
		out, err = s.charts.Resolve(spec, p)
		return err
	})
	return out, err
}

// sourceErr keeps domain failures and wraps anything else as a ServerFailure.
func sourceErr(op string, err error) error {
	var f domain.Failure
	if errors.As(err, &f) {
		return err
	}
	return &domain.ServerFailure{Op: op, Err: err}
}

// guard turns a panic in fn into an *domain.InternalFailure.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(context.Background(), "%s: recovered panic: %v", op, r)
			err = &domain.InternalFailure{Op: op, Cause: r}
		}
	}()
	return fn()
}
