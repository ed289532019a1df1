package risk

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

// LevelForScore maps a [0,1] score to a level. Every indicator goes through it.
func LevelForScore(score float64) domain.VulnerabilityLevel {
	switch {
	case score >= 0.8:
		return domain.RiskLevelCritical
	case score >= 0.6:
		return domain.RiskLevelHigh
	case score >= 0.3:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}

type Scorer struct {
	heuristics config.Heuristics
}

func NewScorer(h config.Heuristics) *Scorer {
	return &Scorer{heuristics: h}
}

type groupAcc struct {
	population decimal.Decimal
	risk       decimal.Decimal
	confidence decimal.Decimal
	count      int64
}

// Distribute groups trends by risk level. Levels with no trends are absent.
func (s *Scorer) Distribute(trends []domain.RiskTrend) domain.RiskDistribution {
	accs := make(map[domain.RiskLevel]*groupAcc)
	for _, t := range trends {
		acc, ok := accs[t.RiskLevel]
		if !ok {
			acc = &groupAcc{}
			accs[t.RiskLevel] = acc
		}
		acc.population = acc.population.Add(decimal.NewFromInt(t.PopulationAtRisk))
		acc.risk = acc.risk.Add(decimal.NewFromFloat(t.RiskScore))
		acc.confidence = acc.confidence.Add(decimal.NewFromFloat(t.Confidence))
		acc.count++
	}

	dist := make(domain.RiskDistribution, len(accs))
	for level, acc := range accs {
		n := decimal.NewFromInt(acc.count)
		dist[level] = domain.RiskGroup{
			PopulationCount:   acc.population.IntPart(),
			AverageRisk:       acc.risk.Div(n).InexactFloat64(),
			AverageConfidence: acc.confidence.Div(n).InexactFloat64(),
			AreaCount:         int(acc.count),
		}
	}
	return dist
}

// Indicators returns the four vulnerability indicators in a fixed order:
// population density, high risk exposure, geographic spread, children at risk.
func (s *Scorer) Indicators(dist domain.RiskDistribution, trends []domain.RiskTrend) []domain.VulnerabilityIndicator {
	total := float64(dist.TotalPopulation())
	highRisk := float64(dist[domain.RiskLevelHigh].PopulationCount + dist[domain.RiskLevelCritical].PopulationCount)

	return []domain.VulnerabilityIndicator{
		indicator(domain.IndicatorPopulationDensity, s.populationDensity(total)),
		indicator(domain.IndicatorHighRiskExposure, ratio(highRisk, total)),
		indicator(domain.IndicatorGeographicSpread, s.geographicSpread(trends)),
		indicator(domain.IndicatorChildrenAtRisk, s.childrenAtRisk(total, highRisk)),
	}
}

func indicator(name string, score float64) domain.VulnerabilityIndicator {
	score = clampUnit(score)
	return domain.VulnerabilityIndicator{Name: name, Score: score, Level: LevelForScore(score)}
}

func (s *Scorer) populationDensity(total float64) float64 {
	if s.heuristics.PopulationDensityNorm <= 0 {
		return 0
	}
	return math.Min(total/s.heuristics.PopulationDensityNorm, 1)
}

// geographicSpread scores the bounding box of all trend coordinates.
func (s *Scorer) geographicSpread(trends []domain.RiskTrend) float64 {
	if len(trends) < 2 {
		return 0
	}

	first := trends[0].Coordinates
	minLat, maxLat := first.Latitude, first.Latitude
	minLon, maxLon := first.Longitude, first.Longitude
	for _, t := range trends[1:] {
		c := t.Coordinates
		minLat, maxLat = math.Min(minLat, c.Latitude), math.Max(maxLat, c.Latitude)
		minLon, maxLon = math.Min(minLon, c.Longitude), math.Max(maxLon, c.Longitude)
	}

	area := (maxLat - minLat) * (maxLon - minLon)
	return math.Min(area*s.heuristics.GeographicSpreadScale, 1)
}

func (s *Scorer) childrenAtRisk(total, highRisk float64) float64 {
	children := total * s.heuristics.ChildrenFraction
	highRiskChildren := highRisk * s.heuristics.HighRiskChildrenFraction
	return ratio(highRiskChildren, children)
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
