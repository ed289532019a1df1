package domain

import "time"

// CorrelationPoint pairs the risk observed on a day with the alerts issued for it.
type CorrelationPoint struct {
	RiskScore     float64   `json:"riskScore"`
	AlertCount    int64     `json:"alertCount"`
	Effectiveness float64   `json:"effectiveness"`
	Timestamp     time.Time `json:"timestamp"`
	RiskLevel     RiskLevel `json:"riskLevel"`
}

type EffectivenessMetrics struct {
	OverallEffectiveness float64       `json:"overallEffectiveness"`
	TruePositiveRate     float64       `json:"truePositiveRate"`
	FalsePositiveRate    float64       `json:"falsePositiveRate"`
	Coverage             float64       `json:"coverage"`
	AverageResponseTime  time.Duration `json:"averageResponseTime"`
}

type CorrelationStrength string

const (
	CorrelationNone     CorrelationStrength = "none"
	CorrelationWeak     CorrelationStrength = "weak"
	CorrelationModerate CorrelationStrength = "moderate"
	CorrelationStrong   CorrelationStrength = "strong"
)

type CorrelationResult struct {
	Coefficient float64             `json:"coefficient"`
	Strength    CorrelationStrength `json:"strength"`
	Positive    bool                `json:"positive"`
	Samples     int                 `json:"samples"`
}

// RiskGroup aggregates every risk trend sharing one risk level.
type RiskGroup struct {
	PopulationCount   int64   `json:"populationCount"`
	AverageRisk       float64 `json:"averageRisk"`
	AverageConfidence float64 `json:"averageConfidence"`
	AreaCount         int     `json:"areaCount"`
}

type RiskDistribution map[RiskLevel]RiskGroup

// TotalPopulation sums the population of every group.
func (d RiskDistribution) TotalPopulation() int64 {
	var total int64
	for _, g := range d {
		total += g.PopulationCount
	}
	return total
}

// VulnerabilityLevel shares its values with RiskLevel.
type VulnerabilityLevel = RiskLevel

type VulnerabilityIndicator struct {
	Name  string             `json:"name"`
	Score float64            `json:"score"`
	Level VulnerabilityLevel `json:"level"`
}

const (
	IndicatorPopulationDensity = "Population Density"
	IndicatorHighRiskExposure  = "High Risk Exposure"
	IndicatorGeographicSpread  = "Geographic Spread"
	IndicatorChildrenAtRisk    = "Children at Risk"
)
