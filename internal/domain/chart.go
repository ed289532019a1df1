package domain

import "time"

type ChartType string

const (
	ChartTypeLine    ChartType = "line"
	ChartTypeBar     ChartType = "bar"
	ChartTypePie     ChartType = "pie"
	ChartTypeScatter ChartType = "scatter"
)

// DataType is the semantic category of data a chart displays.
type DataType string

const (
	DataTypePredictionAccuracy       DataType = "predictionAccuracy"
	DataTypeEnvironmentalTrends      DataType = "environmentalTrends"
	DataTypeRiskTrends               DataType = "riskTrends"
	DataTypeTemporalPatterns         DataType = "temporalPatterns"
	DataTypeAlertStatistics          DataType = "alertStatistics"
	DataTypeRiskDistribution         DataType = "riskDistribution"
	DataTypeModelComparison          DataType = "modelComparison"
	DataTypeDataQuality              DataType = "dataQuality"
	DataTypeEnvironmentalCorrelation DataType = "environmentalCorrelation"
)

// ChartStyle holds optional rendering overrides. Nil fields fall back to defaults.
type ChartStyle struct {
	Title    *string  `json:"title,omitempty"`
	Subtitle *string  `json:"subtitle,omitempty"`
	Colors   []string `json:"colors,omitempty"`
	ShowGrid *bool    `json:"showGrid,omitempty"`
	Animate  *bool    `json:"animate,omitempty"`
	MinY     *float64 `json:"minY,omitempty"`
	MaxY     *float64 `json:"maxY,omitempty"`
	MinX     *float64 `json:"minX,omitempty"`
	MaxX     *float64 `json:"maxX,omitempty"`
}

type ChartRequestSpec struct {
	ChartType ChartType   `json:"chartType"`
	DataType  DataType    `json:"dataType"`
	Region    string      `json:"region"`
	DateRange DateRange   `json:"dateRange"`
	Style     *ChartStyle `json:"style,omitempty"`
	XFactor   *string     `json:"xFactor,omitempty"`
	YFactor   *string     `json:"yFactor,omitempty"`
}

type Axis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// ChartMeta is shared by every chart variant.
type ChartMeta struct {
	ChartType ChartType `json:"chartType"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	DataType  DataType  `json:"dataType"`
	Region    string    `json:"region"`
	ShowGrid  bool      `json:"showGrid"`
	Animate   bool      `json:"animate"`
}

// ChartData is one of LineChartData, BarChartData, PieChartData or ScatterChartData.
type ChartData interface {
	Type() ChartType
	Metadata() ChartMeta
	IsEmpty() bool
}

type TimePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type LineSeries struct {
	Name   string      `json:"name"`
	Color  string      `json:"color"`
	Points []TimePoint `json:"points"`
}

type LineChartData struct {
	ChartMeta
	Series []LineSeries `json:"series"`
	XAxis  Axis         `json:"xAxis"`
	YAxis  Axis         `json:"yAxis"`
}

func (c *LineChartData) Type() ChartType     { return ChartTypeLine }
func (c *LineChartData) Metadata() ChartMeta { return c.ChartMeta }
func (c *LineChartData) IsEmpty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type BarChartData struct {
	ChartMeta
	Bars  []Bar `json:"bars"`
	YAxis Axis  `json:"yAxis"`
}

func (c *BarChartData) Type() ChartType     { return ChartTypeBar }
func (c *BarChartData) Metadata() ChartMeta { return c.ChartMeta }
func (c *BarChartData) IsEmpty() bool       { return len(c.Bars) == 0 }

type PieSection struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type PieChartData struct {
	ChartMeta
	Sections []PieSection `json:"sections"`
	Total    float64      `json:"total"`
}

func (c *PieChartData) Type() ChartType     { return ChartTypePie }
func (c *PieChartData) Metadata() ChartMeta { return c.ChartMeta }
func (c *PieChartData) IsEmpty() bool       { return len(c.Sections) == 0 }

type ScatterPoint struct {
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Date  time.Time `json:"date"`
	Color string    `json:"color"`
}

type ScatterChartData struct {
	ChartMeta
	XFactor string         `json:"xFactor"`
	YFactor string         `json:"yFactor"`
	Points  []ScatterPoint `json:"points"`
	XAxis   Axis           `json:"xAxis"`
	YAxis   Axis           `json:"yAxis"`
}

func (c *ScatterChartData) Type() ChartType     { return ChartTypeScatter }
func (c *ScatterChartData) Metadata() ChartMeta { return c.ChartMeta }
func (c *ScatterChartData) IsEmpty() bool       { return len(c.Points) == 0 }
