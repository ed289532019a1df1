package correlation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

func TestPearson(t *testing.T) {
	series := []float64{1, 3, 2, 8, 5}
	negated := []float64{-1, -3, -2, -8, -5}

	assert.InDelta(t, 1.0, Pearson(series, series), 1e-12)
	assert.InDelta(t, -1.0, Pearson(series, negated), 1e-12)
	assert.Equal(t, 0.0, Pearson([]float64{4}, []float64{7}))
	assert.Equal(t, 0.0, Pearson(nil, nil))
	assert.Equal(t, 0.0, Pearson([]float64{2, 2, 2}, []float64{1, 2, 3}), "constant series")
}

func TestPearson_KnownValue(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}
	// cov=6, varX=10, varY=6
	assert.InDelta(t, 6/(10*0.7745966692414834), Pearson(x, y), 1e-12)
}

func TestPearson_UsesShortestSeries(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3, 100}, []float64{2, 4, 6}), 1e-12)
}

func TestPearson_Bounded(t *testing.T) {
	x := []float64{1e-8, 2e-8, 3e-8}
	r := Pearson(x, x)
	assert.LessOrEqual(t, r, 1.0)
	assert.GreaterOrEqual(t, r, -1.0)
}

func TestStrength(t *testing.T) {
	assert.Equal(t, domain.CorrelationStrong, Strength(-0.9))
	assert.Equal(t, domain.CorrelationModerate, Strength(0.4))
	assert.Equal(t, domain.CorrelationWeak, Strength(0.15))
	assert.Equal(t, domain.CorrelationNone, Strength(0.05))
}

func TestEngine_Correlate(t *testing.T) {
	e := NewEngine(config.DefaultHeuristics())
	res := e.Correlate([]float64{1, 2, 3}, []float64{3, 2, 1})
	assert.InDelta(t, -1.0, res.Coefficient, 1e-12)
	assert.False(t, res.Positive)
	assert.Equal(t, domain.CorrelationStrong, res.Strength)
	assert.Equal(t, 3, res.Samples)
}

func TestEngine_Effectiveness(t *testing.T) {
	e := NewEngine(config.DefaultHeuristics())

	assert.Equal(t, 1.0, e.Effectiveness(0.5, 5))
	assert.InDelta(t, 0.8, e.Effectiveness(0.5, 4), 1e-12)
	assert.InDelta(t, 0.8, e.Effectiveness(0.5, 6), 1e-12, "symmetric decay")
	assert.Equal(t, 0.0, e.Effectiveness(0.5, 10))
	assert.Equal(t, 0.0, e.Effectiveness(0.5, 50), "clamped at zero")
	assert.Equal(t, 0.0, e.Effectiveness(0, 3), "zero expectation")
	assert.Equal(t, 0.0, e.Effectiveness(0.5, 0))
}

func TestEngine_Points(t *testing.T) {
	e := NewEngine(config.DefaultHeuristics())
	day1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	points := e.Points([]domain.RiskTrend{
		{Date: day2, RiskLevel: domain.RiskLevelLow, RiskScore: 0.2},
		{Date: day1, RiskLevel: domain.RiskLevelHigh, RiskScore: 0.5},
	}, map[string]int64{domain.DayKey(day1): 5})

	require.Len(t, points, 2)
	assert.Equal(t, day1, points[0].Timestamp)
	assert.Equal(t, int64(5), points[0].AlertCount)
	assert.Equal(t, 1.0, points[0].Effectiveness)
	assert.Equal(t, int64(0), points[1].AlertCount)
	assert.Equal(t, 0.0, points[1].Effectiveness)
}

func TestEngine_Aggregate(t *testing.T) {
	e := NewEngine(config.DefaultHeuristics())
	points := []domain.CorrelationPoint{
		{Effectiveness: 1, RiskLevel: domain.RiskLevelCritical},
		{Effectiveness: 0.5, RiskLevel: domain.RiskLevelHigh},
		{Effectiveness: 0, RiskLevel: domain.RiskLevelLow},
		{Effectiveness: 0.5, RiskLevel: domain.RiskLevelMedium},
	}
	alerts := domain.AlertStatistics{
		TotalAlerts:         20,
		FalsePositives:      5,
		DeliveryRate:        0.97,
		AverageResponseTime: 90 * time.Second,
	}

	m := e.Aggregate(points, alerts)
	assert.Equal(t, 0.5, m.OverallEffectiveness)
	assert.Equal(t, 0.5, m.TruePositiveRate)
	assert.Equal(t, 0.25, m.FalsePositiveRate)
	assert.Equal(t, 0.97, m.Coverage)
	assert.Equal(t, 90*time.Second, m.AverageResponseTime)
}

func TestEngine_AggregateEmpty(t *testing.T) {
	e := NewEngine(config.DefaultHeuristics())
	m := e.Aggregate(nil, domain.AlertStatistics{})
	assert.Equal(t, domain.EffectivenessMetrics{}, m)
}

func TestEngine_SeverityEffectiveness(t *testing.T) {
	e := NewEngine(config.DefaultHeuristics())
	got := e.SeverityEffectiveness(domain.AlertStatistics{
		TotalAlerts: 100,
		BySeverity: map[domain.Severity]int64{
			domain.SeverityInfo:      50,
			domain.SeverityMedium:    20,
			domain.SeverityHigh:      20,
			domain.SeverityEmergency: 10,
		},
	})

	assert.InDelta(t, 0.5, got[domain.SeverityInfo], 1e-12)
	assert.Equal(t, 0.0, got[domain.SeverityLow])
	assert.InDelta(t, 0.6, got[domain.SeverityMedium], 1e-12)
	assert.InDelta(t, 0.8, got[domain.SeverityHigh], 1e-12)
	assert.InDelta(t, 0.5, got[domain.SeverityEmergency], 1e-12)

	capped := e.SeverityEffectiveness(domain.AlertStatistics{
		TotalAlerts: 10,
		BySeverity:  map[domain.Severity]int64{domain.SeverityEmergency: 5},
	})
	assert.Equal(t, 1.0, capped[domain.SeverityEmergency])

	none := e.SeverityEffectiveness(domain.AlertStatistics{})
	assert.Len(t, none, len(domain.Severities))
	assert.Zero(t, none[domain.SeverityHigh])
}
