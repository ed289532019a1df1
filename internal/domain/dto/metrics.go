package dto

import (
	"time"

	"github.com/ougirez/malaria-analytics/internal/domain"
)

type PearsonRequest struct {
	X []float64 `json:"x" validate:"max=100000"`
	Y []float64 `json:"y" validate:"max=100000"`
}

type RiskTrend struct {
	Date             time.Time          `json:"date"`
	RiskLevel        domain.RiskLevel   `json:"riskLevel" validate:"required,oneof=low medium high critical"`
	RiskScore        float64            `json:"riskScore" validate:"gte=0,lte=1"`
	PopulationAtRisk int64              `json:"populationAtRisk" validate:"gte=0"`
	Coordinates      domain.Coordinates `json:"coordinates"`
	Confidence       float64            `json:"confidence" validate:"gte=0,lte=1"`
}

func (t RiskTrend) ToDomain() domain.RiskTrend {
	return domain.RiskTrend{
		Date:             t.Date,
		RiskLevel:        t.RiskLevel,
		RiskScore:        t.RiskScore,
		PopulationAtRisk: t.PopulationAtRisk,
		Coordinates:      t.Coordinates,
		Confidence:       t.Confidence,
	}
}

type RiskRequest struct {
	RiskTrends []RiskTrend `json:"riskTrends" validate:"max=100000,dive"`
}

func (r RiskRequest) Trends() []domain.RiskTrend {
	out := make([]domain.RiskTrend, 0, len(r.RiskTrends))
	for _, t := range r.RiskTrends {
		out = append(out, t.ToDomain())
	}
	return out
}

type EffectivenessRequest struct {
	RiskRequest
	AlertStatistics domain.AlertStatistics `json:"alertStatistics"`
}
