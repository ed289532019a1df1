package correlation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

type Engine struct {
	heuristics config.Heuristics
}

func NewEngine(h config.Heuristics) *Engine {
	return &Engine{heuristics: h}
}

// Pearson returns the correlation coefficient of the paired samples. Only the
// first min(len(x), len(y)) pairs are used. Fewer than two pairs or a constant
// series yield 0.
func Pearson(x, y []float64) float64 {
	n := min(len(x), len(y))
	if n < 2 {
		return 0
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}

	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// Strength classifies |r|: strong from 0.7, moderate from 0.4, weak from 0.1.
func Strength(r float64) domain.CorrelationStrength {
	switch a := math.Abs(r); {
	case a >= 0.7:
		return domain.CorrelationStrong
	case a >= 0.4:
		return domain.CorrelationModerate
	case a >= 0.1:
		return domain.CorrelationWeak
	default:
		return domain.CorrelationNone
	}
}

func (e *Engine) Correlate(x, y []float64) domain.CorrelationResult {
	r := Pearson(x, y)
	return domain.CorrelationResult{
		Coefficient: r,
		Strength:    Strength(r),
		Positive:    r > 0,
		Samples:     min(len(x), len(y)),
	}
}

// Effectiveness scores how close the alert volume came to the volume the risk
// score predicts. 1 is an exact match; it falls off linearly on both sides.
func (e *Engine) Effectiveness(riskScore float64, alertCount int64) float64 {
	expected := riskScore * e.heuristics.ExpectedAlertsPerRisk
	if expected == 0 || math.IsNaN(expected) {
		return 0
	}
	ratio := float64(alertCount) / expected
	return clampUnit(1 - math.Abs(ratio-1))
}

// Points pairs every risk trend with the alerts issued on its day. Days
// without alerts count as zero alerts. The result is ordered by time.
func (e *Engine) Points(trends []domain.RiskTrend, dailyAlerts map[string]int64) []domain.CorrelationPoint {
	points := make([]domain.CorrelationPoint, 0, len(trends))
	for _, t := range trends {
		count := dailyAlerts[domain.DayKey(t.Date)]
		points = append(points, domain.CorrelationPoint{
			RiskScore:     t.RiskScore,
			AlertCount:    count,
			Effectiveness: e.Effectiveness(t.RiskScore, count),
			Timestamp:     t.Date,
			RiskLevel:     t.RiskLevel,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points
}

// Aggregate summarises the points against the alert statistics of the same
// range. Empty input gives zeroed rates.
func (e *Engine) Aggregate(points []domain.CorrelationPoint, alerts domain.AlertStatistics) domain.EffectivenessMetrics {
	metrics := domain.EffectivenessMetrics{
		Coverage:            alerts.DeliveryRate,
		AverageResponseTime: alerts.AverageResponseTime,
	}
	if alerts.TotalAlerts > 0 {
		metrics.FalsePositiveRate = float64(alerts.FalsePositives) / float64(alerts.TotalAlerts)
	}
	if len(points) == 0 {
		return metrics
	}

	sum := decimal.Zero
	var highRisk int
	for _, p := range points {
		sum = sum.Add(decimal.NewFromFloat(p.Effectiveness))
		if p.RiskLevel.IsHighOrAbove() {
			highRisk++
		}
	}
	n := decimal.NewFromInt(int64(len(points)))
	metrics.OverallEffectiveness = sum.Div(n).InexactFloat64()
	metrics.TruePositiveRate = float64(highRisk) / float64(len(points))
	return metrics
}

// SeverityEffectiveness weighs each severity's share of all alerts. Higher
// severities carry larger weights, so a larger share of severe alerts scores
// higher. Severities without a configured weight use weight 1.
func (e *Engine) SeverityEffectiveness(alerts domain.AlertStatistics) map[domain.Severity]float64 {
	out := make(map[domain.Severity]float64, len(domain.Severities))
	for _, sev := range domain.Severities {
		out[sev] = e.severityScore(sev, alerts.BySeverity[sev], alerts.TotalAlerts)
	}
	return out
}

func (e *Engine) severityScore(sev domain.Severity, count, total int64) float64 {
	if total <= 0 {
		return 0
	}
	weight, ok := e.heuristics.SeverityWeights[string(sev)]
	if !ok {
		weight = 1
	}
	return clampUnit(float64(count) / float64(total) * weight)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
