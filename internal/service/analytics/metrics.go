package analytics

import "github.com/ougirez/malaria-analytics/internal/domain"

func (s *Service) Correlate(x, y []float64) (out domain.CorrelationResult, err error) {
	err = guard("correlate", func() error {
		out = s.engine.Correlate(x, y)
		return nil
	})
	return out, err
}

func (s *Service) Effectiveness(riskScore float64, alertCount int64) (out float64, err error) {
	err = guard("effectiveness", func() error {
		out = s.engine.Effectiveness(riskScore, alertCount)
		return nil
	})
	return out, err
}

func (s *Service) CorrelationPoints(trends []domain.RiskTrend, dailyAlerts map[string]int64) (out []domain.CorrelationPoint, err error) {
	err = guard("correlation points", func() error {
		out = s.engine.Points(trends, dailyAlerts)
		return nil
	})
	return out, err
}

func (s *Service) AggregateEffectiveness(points []domain.CorrelationPoint, alerts domain.AlertStatistics) (out domain.EffectivenessMetrics, err error) {
	err = guard("aggregate effectiveness", func() error {
		out = s.engine.Aggregate(points, alerts)
		return nil
	})
	return out, err
}

func (s *Service) SeverityEffectiveness(alerts domain.AlertStatistics) (out map[domain.Severity]float64, err error) {
	err = guard("severity effectiveness", func() error {
		out = s.engine.SeverityEffectiveness(alerts)
		return nil
	})
	return out, err
}

func (s *Service) RiskDistribution(trends []domain.RiskTrend) (out domain.RiskDistribution, err error) {
	err = guard("risk distribution", func() error {
		out = s.scorer.Distribute(trends)
		return nil
	})
	return out, err
}

// VulnerabilityIndicators distributes trends first, then scores the result.
func (s *Service) VulnerabilityIndicators(trends []domain.RiskTrend) (out []domain.VulnerabilityIndicator, err error) {
	err = guard("vulnerability indicators", func() error {
		out = s.scorer.Indicators(s.scorer.Distribute(trends), trends)
		return nil
	})
	return out, err
}
