package validation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

func newTestPayloadValidator() *PayloadValidator {
	return NewPayloadValidator(config.DefaultLimits(), func() time.Time { return fixedNow })
}

func validPayload() *domain.AnalyticsPayload {
	return &domain.AnalyticsPayload{
		Region:             "Kenya",
		GeneratedAt:        fixedNow.Add(-time.Hour),
		PredictionAccuracy: 0.85,
		EnvironmentalTrends: []domain.EnvironmentalTrend{
			{Factor: "temperature", Date: fixedNow.AddDate(0, 0, -2), Value: 27.5},
			{Factor: "rainfall", Date: fixedNow.AddDate(0, 0, -2), Value: 12},
		},
		RiskTrends: []domain.RiskTrend{
			{Date: fixedNow.AddDate(0, 0, -1), RiskLevel: domain.RiskLevelHigh, RiskScore: 0.9, PopulationAtRisk: 10000, Confidence: 0.8},
		},
		DataQuality: domain.DataQuality{Completeness: 0.95, Accuracy: 0.9},
	}
}

func TestPayloadValidator_Valid(t *testing.T) {
	v := newTestPayloadValidator()
	p := validPayload()

	got, err := v.Validate(p)
	require.NoError(t, err)
	assert.Same(t, p, got)

	again, err := v.Validate(p)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestPayloadValidator_Rules(t *testing.T) {
	v := newTestPayloadValidator()

	tests := []struct {
		name   string
		mutate func(p *domain.AnalyticsPayload)
		field  string
	}{
		{"empty region", func(p *domain.AnalyticsPayload) { p.Region = "" }, "region"},
		{"stale", func(p *domain.AnalyticsPayload) { p.GeneratedAt = fixedNow.Add(-25 * time.Hour) }, "generatedAt"},
		{"accuracy above one", func(p *domain.AnalyticsPayload) { p.PredictionAccuracy = 1.01 }, "predictionAccuracy"},
		{"accuracy NaN", func(p *domain.AnalyticsPayload) { p.PredictionAccuracy = math.NaN() }, "predictionAccuracy"},
		{"trend NaN", func(p *domain.AnalyticsPayload) { p.EnvironmentalTrends[1].Value = math.NaN() }, "environmentalTrends"},
		{"trend infinite", func(p *domain.AnalyticsPayload) { p.EnvironmentalTrends[0].Value = math.Inf(-1) }, "environmentalTrends"},
		{"risk score above one", func(p *domain.AnalyticsPayload) { p.RiskTrends[0].RiskScore = 1.2 }, "riskTrends"},
		{"risk score negative", func(p *domain.AnalyticsPayload) { p.RiskTrends[0].RiskScore = -0.01 }, "riskTrends"},
		{"completeness", func(p *domain.AnalyticsPayload) { p.DataQuality.Completeness = 2 }, "dataQuality.completeness"},
		{"quality accuracy", func(p *domain.AnalyticsPayload) { p.DataQuality.Accuracy = -1 }, "dataQuality.accuracy"},
		{"delivery rate", func(p *domain.AnalyticsPayload) {
			p.AlertStatistics = &domain.AlertStatistics{DeliveryRate: 1.5}
		}, "alertStatistics.deliveryRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			_, err := v.Validate(p)
			var df *domain.DataValidationFailure
			require.ErrorAs(t, err, &df)
			assert.Equal(t, tt.field, df.Field)
			assert.Equal(t, domain.KindDataValidation, df.Kind())
		})
	}
}

func TestPayloadValidator_ExactlyStaleBoundaryIsAccepted(t *testing.T) {
	v := newTestPayloadValidator()
	p := validPayload()
	p.GeneratedAt = fixedNow.Add(-24 * time.Hour)

	_, err := v.Validate(p)
	assert.NoError(t, err)
}

func TestPayloadValidator_NilPayload(t *testing.T) {
	_, err := newTestPayloadValidator().Validate(nil)
	assert.Equal(t, "payload", domain.FieldOf(err))
}

func TestPayloadValidator_ReportsFirstViolation(t *testing.T) {
	v := newTestPayloadValidator()
	p := validPayload()
	p.PredictionAccuracy = 3
	p.RiskTrends[0].RiskScore = 3
	p.DataQuality.Accuracy = 3

	for i := 0; i < 3; i++ {
		_, err := v.Validate(p)
		assert.Equal(t, "predictionAccuracy", domain.FieldOf(err))
	}
}
