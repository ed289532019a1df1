package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

type PayloadValidator struct {
	validate *validator.Validate
	limits   config.Limits
	now      Clock
}

func NewPayloadValidator(limits config.Limits, now Clock) *PayloadValidator {
	return &PayloadValidator{
		validate: newValidate(),
		limits:   limits,
		now:      clockOrDefault(now),
	}
}

// Validate short-circuits on the first violated rule. Rules run in a fixed
// order so the reported field is deterministic. The payload is not modified.
func (v *PayloadValidator) Validate(p *domain.AnalyticsPayload) (*domain.AnalyticsPayload, error) {
	if p == nil {
		return nil, domain.NewDataValidationFailure("payload", "payload is missing", nil)
	}

	if strings.TrimSpace(p.Region) == "" {
		return nil, domain.NewDataValidationFailure("region", "region is required", p.Region)
	}

	staleness := v.limits.PayloadStaleness()
	if age := v.now().Sub(p.GeneratedAt); age > staleness {
		return nil, domain.NewDataValidationFailure("generatedAt",
			fmt.Sprintf("payload is %s old, older than %s", age.Round(time.Second), staleness), p.GeneratedAt)
	}

	if !v.inUnitInterval(p.PredictionAccuracy) {
		return nil, domain.NewDataValidationFailure("predictionAccuracy",
			"prediction accuracy must be between 0 and 1", p.PredictionAccuracy)
	}

	for i, t := range p.EnvironmentalTrends {
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
			return nil, domain.NewDataValidationFailure("environmentalTrends",
				fmt.Sprintf("value #%d for %s is not a finite number", i, t.Factor), t.Value)
		}
	}

	for i, t := range p.RiskTrends {
		if !v.inUnitInterval(t.RiskScore) {
			return nil, domain.NewDataValidationFailure("riskTrends",
				fmt.Sprintf("risk score #%d must be between 0 and 1", i), t.RiskScore)
		}
	}

	if !v.inUnitInterval(p.DataQuality.Completeness) {
		return nil, domain.NewDataValidationFailure("dataQuality.completeness",
			"completeness must be between 0 and 1", p.DataQuality.Completeness)
	}
	if !v.inUnitInterval(p.DataQuality.Accuracy) {
		return nil, domain.NewDataValidationFailure("dataQuality.accuracy",
			"accuracy must be between 0 and 1", p.DataQuality.Accuracy)
	}

	if s := p.AlertStatistics; s != nil && !v.inUnitInterval(s.DeliveryRate) {
		return nil, domain.NewDataValidationFailure("alertStatistics.deliveryRate",
			"delivery rate must be between 0 and 1", s.DeliveryRate)
	}

	return p, nil
}

func (v *PayloadValidator) inUnitInterval(x float64) bool {
	return v.validate.Var(x, tagUnitInterval) == nil
}
