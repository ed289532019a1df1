package chart

import "github.com/ougirez/malaria-analytics/internal/domain"

var DefaultPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

var defaultTitles = map[domain.DataType]string{
	domain.DataTypePredictionAccuracy:       "Prediction Accuracy",
	domain.DataTypeEnvironmentalTrends:      "Environmental Trends",
	domain.DataTypeRiskTrends:               "Risk Trends",
	domain.DataTypeTemporalPatterns:         "Temporal Risk Patterns",
	domain.DataTypeAlertStatistics:          "Alert Statistics",
	domain.DataTypeRiskDistribution:         "Risk Distribution",
	domain.DataTypeModelComparison:          "Model Comparison",
	domain.DataTypeDataQuality:              "Data Quality",
	domain.DataTypeEnvironmentalCorrelation: "Environmental Correlation",
}

type palette []string

// at wraps around when there are more series than colors.
func (p palette) at(i int) string {
	return p[i%len(p)]
}

func resolveStyle(spec domain.ChartRequestSpec) (domain.ChartMeta, palette) {
	meta := domain.ChartMeta{
		ChartType: spec.ChartType,
		Title:     defaultTitles[spec.DataType],
		Subtitle:  spec.Region,
		DataType:  spec.DataType,
		Region:    spec.Region,
		ShowGrid:  true,
		Animate:   true,
	}
	colors := palette(DefaultPalette)

	s := spec.Style
	if s == nil {
		return meta, colors
	}
	if s.Title != nil {
		meta.Title = *s.Title
	}
	if s.Subtitle != nil {
		meta.Subtitle = *s.Subtitle
	}
	if s.ShowGrid != nil {
		meta.ShowGrid = *s.ShowGrid
	}
	if s.Animate != nil {
		meta.Animate = *s.Animate
	}
	if len(s.Colors) > 0 {
		colors = palette(s.Colors)
	}
	return meta, colors
}

func (r *Resolver) yLimits(spec domain.ChartRequestSpec) (*float64, *float64) {
	if spec.Style == nil {
		return nil, nil
	}
	return spec.Style.MinY, spec.Style.MaxY
}

func (r *Resolver) xLimits(spec domain.ChartRequestSpec) (*float64, *float64) {
	if spec.Style == nil {
		return nil, nil
	}
	return spec.Style.MinX, spec.Style.MaxX
}
