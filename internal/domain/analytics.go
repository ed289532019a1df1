package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive time window. Build it with NewDateRange; a change
// of either bound produces a new value.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// LastDays returns the range ending at end and spanning the given number of days.
func LastDays(end time.Time, days int) DateRange {
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// AnalyticsFilters narrows what the data source returns. Nil pointers mean
// "not set".
type AnalyticsFilters struct {
	MinConfidence        *float64 `json:"minConfidence,omitempty"`
	MaxDataAgeHours      *int     `json:"maxDataAgeHours,omitempty"`
	IncludePredictions   bool     `json:"includePredictions"`
	IncludeEnvironmental bool     `json:"includeEnvironmental"`
	IncludeRisk          bool     `json:"includeRisk"`
	IncludeAlerts        bool     `json:"includeAlerts"`
	IncludeDataQuality   bool     `json:"includeDataQuality"`
}

// DefaultFilters includes every data category with no thresholds.
func DefaultFilters() AnalyticsFilters {
	return AnalyticsFilters{
		IncludePredictions:   true,
		IncludeEnvironmental: true,
		IncludeRisk:          true,
		IncludeAlerts:        true,
		IncludeDataQuality:   true,
	}
}

func (f AnalyticsFilters) AnyIncluded() bool {
	return f.IncludePredictions || f.IncludeEnvironmental || f.IncludeRisk || f.IncludeAlerts || f.IncludeDataQuality
}

type AnalyticsRequest struct {
	Region    string            `json:"region"`
	DateRange DateRange         `json:"dateRange"`
	Filters   *AnalyticsFilters `json:"filters,omitempty"`
}

// EffectiveFilters returns the request filters or DefaultFilters when none were given.
func (r AnalyticsRequest) EffectiveFilters() AnalyticsFilters {
	if r.Filters == nil {
		return DefaultFilters()
	}
	return *r.Filters
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

type EnvironmentalTrend struct {
	Factor string    `json:"factor" db:"factor"`
	Date   time.Time `json:"date" db:"recorded_at"`
	Value  float64   `json:"value" db:"value"`
}

type RiskTrend struct {
	Date             time.Time   `json:"date"`
	RiskLevel        RiskLevel   `json:"riskLevel"`
	RiskScore        float64     `json:"riskScore"`
	PopulationAtRisk int64       `json:"populationAtRisk"`
	Coordinates      Coordinates `json:"coordinates"`
	Confidence       float64     `json:"confidence"`
}

type DataQuality struct {
	Completeness float64 `json:"completeness" db:"completeness"`
	Accuracy     float64 `json:"accuracy" db:"accuracy"`
}

// AlertStatistics summarises alert delivery for a region and range.
type AlertStatistics struct {
	BySeverity          map[Severity]int64 `json:"bySeverity"`
	TotalAlerts         int64              `json:"totalAlerts"`
	FalsePositives      int64              `json:"falsePositives"`
	DeliveryRate        float64            `json:"deliveryRate"`
	AverageResponseTime time.Duration      `json:"averageResponseTime"`

	// DailyCounts maps a UTC day (YYYY-MM-DD) to the number of alerts issued.
	DailyCounts map[string]int64 `json:"dailyCounts,omitempty"`
}

type ModelMetric struct {
	Model    string  `json:"model" db:"model"`
	Accuracy float64 `json:"accuracy" db:"accuracy"`
}

type AnalyticsPayload struct {
	Region              string               `json:"region"`
	GeneratedAt         time.Time            `json:"generatedAt"`
	PredictionAccuracy  float64              `json:"predictionAccuracy"`
	EnvironmentalTrends []EnvironmentalTrend `json:"environmentalTrends"`
	RiskTrends          []RiskTrend          `json:"riskTrends"`
	DataQuality         DataQuality          `json:"dataQuality"`
	AlertStatistics     *AlertStatistics     `json:"alertStatistics,omitempty"`
	ModelMetrics        []ModelMetric        `json:"modelMetrics,omitempty"`
}

// DayKey is the bucket key used for per-day alert counts.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// MonthKey is the bucket key used for temporal patterns.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// SeriesPoint is one raw sample as returned by the data source for a series query.
type SeriesPoint struct {
	Label string    `json:"label" db:"label"`
	Date  time.Time `json:"date" db:"recorded_at"`
	Value float64   `json:"value" db:"value"`
}

// SeriesConfig narrows a raw series query. A nil Factor returns every label.
type SeriesConfig struct {
	Factor *string `json:"factor,omitempty"`
	Limit  uint64  `json:"limit,omitempty"`
}

// RiskLevel is the ordinal transmission risk category for an area.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskLevels lists every level in ascending order.
var RiskLevels = []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical}

func ParseRiskLevel(s string) (RiskLevel, error) {
	l := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if l.Rank() < 0 {
		return "", fmt.Errorf("unknown risk level %q", s)
	}
	return l, nil
}

// Rank orders levels from 0 (low) to 3 (critical); -1 for unknown values.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelLow:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return -1
	}
}

func (l RiskLevel) IsHighOrAbove() bool {
	return l.Rank() >= RiskLevelHigh.Rank()
}

// Severity of an issued alert.
type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityLow       Severity = "low"
	SeverityMedium    Severity = "medium"
	SeverityHigh      Severity = "high"
	SeverityEmergency Severity = "emergency"
)

var Severities = []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityEmergency}
