package chart

import (
	"sort"
	"time"

	"github.com/ougirez/malaria-analytics/internal/domain"
)

// Scatter factors read from risk trends instead of environmental trends.
const (
	FactorRiskScore        = "riskScore"
	FactorConfidence       = "confidence"
	FactorPopulationAtRisk = "populationAtRisk"
)

type sample struct {
	date  time.Time
	value float64
}

type bucketKey func(time.Time) (string, time.Time)

func byDay(t time.Time) (string, time.Time) {
	u := t.UTC()
	return domain.DayKey(u), time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func byMonth(t time.Time) (string, time.Time) {
	u := t.UTC()
	return domain.MonthKey(u), time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// average buckets samples and returns one mean per bucket, ordered by date.
func average(samples []sample, key bucketKey) []domain.TimePoint {
	type acc struct {
		date time.Time
		sum  float64
		n    int
	}
	accs := make(map[string]*acc)
	for _, s := range samples {
		k, d := key(s.date)
		a, ok := accs[k]
		if !ok {
			a = &acc{date: d}
			accs[k] = a
		}
		a.sum += s.value
		a.n++
	}

	out := make([]domain.TimePoint, 0, len(accs))
	for _, a := range accs {
		out = append(out, domain.TimePoint{Date: a.date, Value: a.sum / float64(a.n)})
	}
	sortTimePoints(out)
	return out
}

func sortTimePoints(points []domain.TimePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
}

func riskSamples(trends []domain.RiskTrend, value func(domain.RiskTrend) float64) []sample {
	out := make([]sample, 0, len(trends))
	for _, t := range trends {
		out = append(out, sample{date: t.Date, value: value(t)})
	}
	return out
}

func riskScoreOf(t domain.RiskTrend) float64  { return t.RiskScore }
func confidenceOf(t domain.RiskTrend) float64 { return t.Confidence }
func populationOf(t domain.RiskTrend) float64 { return float64(t.PopulationAtRisk) }

// environmentalSeries groups trends per factor. Factors come back sorted by
// name, points by date.
func environmentalSeries(trends []domain.EnvironmentalTrend) (factors []string, series map[string][]domain.TimePoint) {
	series = make(map[string][]domain.TimePoint)
	for _, t := range trends {
		series[t.Factor] = append(series[t.Factor], domain.TimePoint{Date: t.Date, Value: t.Value})
	}
	for factor, points := range series {
		sortTimePoints(points)
		factors = append(factors, factor)
	}
	sort.Strings(factors)
	return factors, series
}

// EnvironmentalSeries returns the date-sorted samples of one factor.
func EnvironmentalSeries(p *domain.AnalyticsPayload, factor string) []domain.TimePoint {
	if p == nil {
		return nil
	}
	_, series := environmentalSeries(p.EnvironmentalTrends)
	return series[factor]
}

// factorSeries resolves a scatter factor to daily means.
func factorSeries(p *domain.AnalyticsPayload, factor string) []domain.TimePoint {
	switch factor {
	case FactorRiskScore:
		return average(riskSamples(p.RiskTrends, riskScoreOf), byDay)
	case FactorConfidence:
		return average(riskSamples(p.RiskTrends, confidenceOf), byDay)
	case FactorPopulationAtRisk:
		return average(riskSamples(p.RiskTrends, populationOf), byDay)
	}

	samples := make([]sample, 0, len(p.EnvironmentalTrends))
	for _, t := range p.EnvironmentalTrends {
		if t.Factor == factor {
			samples = append(samples, sample{date: t.Date, value: t.Value})
		}
	}
	return average(samples, byDay)
}

func isRatioFactor(factor string) bool {
	return factor == FactorRiskScore || factor == FactorConfidence
}

// pairByDate joins two daily series on their date, keeping only shared days.
func pairByDate(xs, ys []domain.TimePoint) []domain.ScatterPoint {
	yByDate := make(map[time.Time]float64, len(ys))
	for _, y := range ys {
		yByDate[y.Date] = y.Value
	}

	out := make([]domain.ScatterPoint, 0, min(len(xs), len(ys)))
	for _, x := range xs {
		if y, ok := yByDate[x.Date]; ok {
			out = append(out, domain.ScatterPoint{X: x.Value, Y: y, Date: x.Date})
		}
	}
	return out
}

func values(points []domain.TimePoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Value)
	}
	return out
}
