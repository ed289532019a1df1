package analytics

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
	"github.com/ougirez/malaria-analytics/internal/service/chart"
)

// Dashboard bundles everything a region overview renders from one payload.
type Dashboard struct {
	Payload                 *domain.AnalyticsPayload        `json:"payload"`
	Charts                  []domain.ChartData              `json:"charts"`
	RiskDistribution        domain.RiskDistribution         `json:"riskDistribution"`
	VulnerabilityIndicators []domain.VulnerabilityIndicator `json:"vulnerabilityIndicators"`
	CorrelationPoints       []domain.CorrelationPoint       `json:"correlationPoints"`
	Effectiveness           domain.EffectivenessMetrics     `json:"effectiveness"`
	SeverityEffectiveness   map[domain.Severity]float64     `json:"severityEffectiveness"`
}

// Dashboard fetches the payload once and derives every chart and metric from
// it concurrently. Any incompatible spec fails the whole call before the fetch.
func (s *Service) Dashboard(ctx context.Context, req domain.AnalyticsRequest, specs []domain.ChartRequestSpec) (*Dashboard, error) {
	req, err := s.requests.Validate(req)
	if err != nil {
		return nil, err
	}
	specs = slices.Clone(specs)
	for i := range specs {
		if specs[i].Region == "" {
			specs[i].Region = req.Region
		}
		if err = chart.CheckSpec(specs[i]); err != nil {
			return nil, err
		}
	}

	p, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Payload: p,
		Charts:  make([]domain.ChartData, len(specs)),
	}
	alerts := domain.AlertStatistics{}
	if p.AlertStatistics != nil {
		alerts = *p.AlertStatistics
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			c, err := s.Chart(spec, p)
			if err != nil {
				return fmt.Errorf("chart %d (%s/%s): %w", i, spec.ChartType, spec.DataType, err)
			}
			d.Charts[i] = c
			return nil
		})
	}

	eg.Go(func() error {
		return guard("dashboard risk", func() error {
			d.RiskDistribution = s.scorer.Distribute(p.RiskTrends)
			d.VulnerabilityIndicators = s.scorer.Indicators(d.RiskDistribution, p.RiskTrends)
			return nil
		})
	})

	eg.Go(func() error {
		return guard("dashboard correlation", func() error {
			d.CorrelationPoints = s.engine.Points(p.RiskTrends, alerts.DailyCounts)
			d.Effectiveness = s.engine.Aggregate(d.CorrelationPoints, alerts)
			d.SeverityEffectiveness = s.engine.SeverityEffectiveness(alerts)
			return nil
		})
	})

	if err = eg.Wait(); err != nil {
		logger.Errorf(ctx, "analytics.Dashboard, region-%s: %s", req.Region, err.Error())
		return nil, err
	}

	logger.Infof(ctx, "dashboard built for %s: %d charts, %d risk trends", req.Region, len(d.Charts), len(p.RiskTrends))
	return d, nil
}
