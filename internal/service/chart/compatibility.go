package chart

import (
	"slices"

	"github.com/ougirez/malaria-analytics/internal/domain"
)

// compatibility lists which data types each chart type can render.
var compatibility = map[domain.ChartType][]domain.DataType{
	domain.ChartTypeLine: {
		domain.DataTypePredictionAccuracy,
		domain.DataTypeEnvironmentalTrends,
		domain.DataTypeRiskTrends,
		domain.DataTypeTemporalPatterns,
	},
	domain.ChartTypeBar: {
		domain.DataTypeAlertStatistics,
		domain.DataTypeRiskDistribution,
		domain.DataTypeModelComparison,
		domain.DataTypeDataQuality,
	},
	domain.ChartTypePie: {
		domain.DataTypeRiskDistribution,
		domain.DataTypeAlertStatistics,
		domain.DataTypeDataQuality,
	},
	domain.ChartTypeScatter: {
		domain.DataTypeEnvironmentalCorrelation,
		domain.DataTypeRiskTrends,
	},
}

// Compatible reports whether chartType can render dataType.
func Compatible(chartType domain.ChartType, dataType domain.DataType) bool {
	return slices.Contains(compatibility[chartType], dataType)
}

// AllowedDataTypes returns a copy of the data types chartType can render.
func AllowedDataTypes(chartType domain.ChartType) []domain.DataType {
	return slices.Clone(compatibility[chartType])
}

// CheckSpec reports a *domain.CompatibilityFailure for specs Resolve would reject.
func CheckSpec(spec domain.ChartRequestSpec) error {
	if _, ok := compatibility[spec.ChartType]; !ok {
		return &domain.CompatibilityFailure{
			ChartType: spec.ChartType,
			DataType:  spec.DataType,
			Message:   "unknown chart type",
		}
	}
	if !Compatible(spec.ChartType, spec.DataType) {
		return &domain.CompatibilityFailure{ChartType: spec.ChartType, DataType: spec.DataType}
	}
	if spec.ChartType == domain.ChartTypeScatter && (isBlank(spec.XFactor) || isBlank(spec.YFactor)) {
		return &domain.CompatibilityFailure{
			ChartType: spec.ChartType,
			DataType:  spec.DataType,
			Message:   "scatter charts require both xFactor and yFactor",
		}
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
