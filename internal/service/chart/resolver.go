// Package chart turns a validated payload into renderer-ready chart data.
package chart

import (
	"math"
	"sort"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/service/risk"
)

type Resolver struct {
	scorer *risk.Scorer
}

func NewResolver(scorer *risk.Scorer) *Resolver {
	return &Resolver{scorer: scorer}
}

// Resolve checks the spec against the compatibility matrix and builds the
// chart variant for spec.ChartType. A payload without matching data gives an
// empty chart, not an error.
func (r *Resolver) Resolve(spec domain.ChartRequestSpec, p *domain.AnalyticsPayload) (domain.ChartData, error) {
	if err := CheckSpec(spec); err != nil {
		return nil, err
	}
	if p == nil {
		p = &domain.AnalyticsPayload{}
	}

	meta, colors := resolveStyle(spec)
	switch spec.ChartType {
	case domain.ChartTypeLine:
		return r.line(spec, p, meta, colors), nil
	case domain.ChartTypeBar:
		return r.bar(spec, p, meta, colors), nil
	case domain.ChartTypePie:
		return r.pie(spec, p, meta, colors), nil
	default:
		return r.scatter(spec, p, meta, colors), nil
	}
}

func (r *Resolver) line(spec domain.ChartRequestSpec, p *domain.AnalyticsPayload, meta domain.ChartMeta, colors palette) *domain.LineChartData {
	var (
		series []domain.LineSeries
		sc     = scaleRatio
		yLabel = "Score"
	)

	switch spec.DataType {
	case domain.DataTypePredictionAccuracy:
		if !p.GeneratedAt.IsZero() {
			series = append(series, domain.LineSeries{
				Name:   "Prediction Accuracy",
				Points: []domain.TimePoint{{Date: p.GeneratedAt, Value: p.PredictionAccuracy}},
			})
		}
		if conf := average(riskSamples(p.RiskTrends, confidenceOf), byDay); len(conf) > 0 {
			series = append(series, domain.LineSeries{Name: "Average Confidence", Points: conf})
		}
		yLabel = "Accuracy"
	case domain.DataTypeEnvironmentalTrends:
		factors, byFactor := environmentalSeries(p.EnvironmentalTrends)
		for _, f := range factors {
			series = append(series, domain.LineSeries{Name: f, Points: byFactor[f]})
		}
		sc = scaleFree
		yLabel = "Value"
	case domain.DataTypeRiskTrends:
		if pts := average(riskSamples(p.RiskTrends, riskScoreOf), byDay); len(pts) > 0 {
			series = append(series, domain.LineSeries{Name: "Risk Score", Points: pts})
		}
		yLabel = "Risk Score"
	case domain.DataTypeTemporalPatterns:
		if pts := average(riskSamples(p.RiskTrends, riskScoreOf), byMonth); len(pts) > 0 {
			series = append(series, domain.LineSeries{Name: "Monthly Risk", Points: pts})
		}
		yLabel = "Average Risk Score"
	}

	if series == nil {
		series = []domain.LineSeries{}
	}

	var ys, xs []float64
	for i := range series {
		series[i].Color = colors.at(i)
		ys = append(ys, values(series[i].Points)...)
		for _, pt := range series[i].Points {
			xs = append(xs, float64(pt.Date.Unix()))
		}
	}

	minY, maxY := r.yLimits(spec)
	yLo, yHi := bounds(ys, sc, minY, maxY)
	xLo, xHi := timeBounds(xs)

	return &domain.LineChartData{
		ChartMeta: meta,
		Series:    series,
		XAxis:     domain.Axis{Label: "Date", Min: xLo, Max: xHi},
		YAxis:     domain.Axis{Label: yLabel, Min: yLo, Max: yHi},
	}
}

func timeBounds(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}

type labeled struct {
	label string
	value float64
}

func (r *Resolver) categories(dataType domain.DataType, p *domain.AnalyticsPayload) ([]labeled, scale, string) {
	var out []labeled
	switch dataType {
	case domain.DataTypeAlertStatistics:
		if s := p.AlertStatistics; s != nil {
			for _, sev := range domain.Severities {
				out = append(out, labeled{string(sev), float64(s.BySeverity[sev])})
			}
		}
		return out, scaleNonNegative, "Alerts"
	case domain.DataTypeRiskDistribution:
		dist := r.scorer.Distribute(p.RiskTrends)
		for _, level := range domain.RiskLevels {
			if g, ok := dist[level]; ok {
				out = append(out, labeled{string(level), float64(g.PopulationCount)})
			}
		}
		return out, scaleNonNegative, "Population at Risk"
	case domain.DataTypeModelComparison:
		models := make([]domain.ModelMetric, len(p.ModelMetrics))
		copy(models, p.ModelMetrics)
		sort.SliceStable(models, func(i, j int) bool { return models[i].Model < models[j].Model })
		for _, m := range models {
			out = append(out, labeled{m.Model, m.Accuracy})
		}
		return out, scaleRatio, "Accuracy"
	case domain.DataTypeDataQuality:
		return []labeled{
			{"Completeness", p.DataQuality.Completeness},
			{"Accuracy", p.DataQuality.Accuracy},
		}, scaleRatio, "Score"
	}
	return nil, scaleFree, ""
}

func (r *Resolver) bar(spec domain.ChartRequestSpec, p *domain.AnalyticsPayload, meta domain.ChartMeta, colors palette) *domain.BarChartData {
	cats, sc, label := r.categories(spec.DataType, p)

	bars := make([]domain.Bar, 0, len(cats))
	ys := make([]float64, 0, len(cats))
	for i, c := range cats {
		bars = append(bars, domain.Bar{Label: c.label, Value: c.value, Color: colors.at(i)})
		ys = append(ys, c.value)
	}

	minY, maxY := r.yLimits(spec)
	lo, hi := bounds(ys, sc, minY, maxY)
	return &domain.BarChartData{
		ChartMeta: meta,
		Bars:      bars,
		YAxis:     domain.Axis{Label: label, Min: lo, Max: hi},
	}
}

func (r *Resolver) pie(spec domain.ChartRequestSpec, p *domain.AnalyticsPayload, meta domain.ChartMeta, colors palette) *domain.PieChartData {
	var cats []labeled
	if spec.DataType == domain.DataTypeDataQuality {
		complete := math.Max(0, math.Min(1, p.DataQuality.Completeness))
		cats = []labeled{{"Complete", complete}, {"Incomplete", 1 - complete}}
	} else {
		cats, _, _ = r.categories(spec.DataType, p)
	}

	var total float64
	sections := make([]domain.PieSection, 0, len(cats))
	for _, c := range cats {
		if c.value <= 0 {
			continue
		}
		sections = append(sections, domain.PieSection{Label: c.label, Value: c.value})
		total += c.value
	}
	for i := range sections {
		sections[i].Color = colors.at(i)
		if total > 0 {
			sections[i].Percentage = sections[i].Value / total * 100
		}
	}

	return &domain.PieChartData{ChartMeta: meta, Sections: sections, Total: total}
}

func (r *Resolver) scatter(spec domain.ChartRequestSpec, p *domain.AnalyticsPayload, meta domain.ChartMeta, colors palette) *domain.ScatterChartData {
	xFactor, yFactor := *spec.XFactor, *spec.YFactor
	points := pairByDate(factorSeries(p, xFactor), factorSeries(p, yFactor))

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for i := range points {
		points[i].Color = colors.at(0)
		xs = append(xs, points[i].X)
		ys = append(ys, points[i].Y)
	}

	minX, maxX := r.xLimits(spec)
	minY, maxY := r.yLimits(spec)
	xLo, xHi := bounds(xs, factorScale(xFactor), minX, maxX)
	yLo, yHi := bounds(ys, factorScale(yFactor), minY, maxY)

	return &domain.ScatterChartData{
		ChartMeta: meta,
		XFactor:   xFactor,
		YFactor:   yFactor,
		Points:    points,
		XAxis:     domain.Axis{Label: xFactor, Min: xLo, Max: xHi},
		YAxis:     domain.Axis{Label: yFactor, Min: yLo, Max: yHi},
	}
}

func factorScale(factor string) scale {
	switch {
	case isRatioFactor(factor):
		return scaleRatio
	case factor == FactorPopulationAtRisk:
		return scaleNonNegative
	default:
		return scaleFree
	}
}
