package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu      sync.Mutex
	payload *domain.AnalyticsPayload
	series  []domain.SeriesPoint
	err     error
	calls   int
	filters domain.AnalyticsFilters
}

func (f *fakeSource) Fetch(_ context.Context, _ string, _ domain.DateRange, filters domain.AnalyticsFilters) (*domain.AnalyticsPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.filters = filters
	return f.payload, f.err
}

func (f *fakeSource) FetchSeries(_ context.Context, _ domain.DataType, _ string, _ domain.DateRange, _ domain.SeriesConfig) ([]domain.SeriesPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.series, f.err
}

func newTestService(src DataSource) *Service {
	return NewService(src, Opts{
		Limits:     config.DefaultLimits(),
		Heuristics: config.DefaultHeuristics(),
		Clock:      func() time.Time { return fixedNow },
	})
}

func kenyaRequest() domain.AnalyticsRequest {
	return domain.AnalyticsRequest{
		Region:    "Kenya",
		DateRange: domain.LastDays(fixedNow, 30),
	}
}

func kenyaPayload() *domain.AnalyticsPayload {
	return &domain.AnalyticsPayload{
		Region:             "Kenya",
		GeneratedAt:        fixedNow.Add(-time.Hour),
		PredictionAccuracy: 0.85,
		RiskTrends: []domain.RiskTrend{
			{
				Date:             fixedNow.AddDate(0, 0, -2),
				RiskLevel:        domain.RiskLevelHigh,
				RiskScore:        0.9,
				PopulationAtRisk: 10000,
				Confidence:       0.8,
			},
		},
		DataQuality: domain.DataQuality{Completeness: 0.9, Accuracy: 0.8},
		AlertStatistics: &domain.AlertStatistics{
			TotalAlerts:  9,
			BySeverity:   map[domain.Severity]int64{domain.SeverityHigh: 9},
			DeliveryRate: 0.9,
			DailyCounts:  map[string]int64{domain.DayKey(fixedNow.AddDate(0, 0, -2)): 9},
		},
	}
}

func TestService_Payload(t *testing.T) {
	src := &fakeSource{payload: kenyaPayload()}
	svc := newTestService(src)

	p, err := svc.Payload(context.Background(), kenyaRequest())
	require.NoError(t, err)
	assert.Equal(t, "Kenya", p.Region)
	assert.Equal(t, domain.DefaultFilters(), src.filters, "missing filters include everything")
}

func TestService_Payload_InvalidRequestSkipsFetch(t *testing.T) {
	src := &fakeSource{payload: kenyaPayload()}
	svc := newTestService(src)

	req := kenyaRequest()
	req.Region = " "
	_, err := svc.Payload(context.Background(), req)

	var vf *domain.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "region", vf.Field)
	assert.Zero(t, src.calls)
}

func TestService_Payload_SourceErrorIsServerFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newTestService(&fakeSource{err: cause})

	_, err := svc.Payload(context.Background(), kenyaRequest())

	var sf *domain.ServerFailure
	require.ErrorAs(t, err, &sf)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, domain.KindServer, sf.Kind())
}

func TestService_Payload_NotFoundKeepsCode(t *testing.T) {
	svc := newTestService(&fakeSource{err: constants.ErrDBNotFound})

	_, err := svc.Payload(context.Background(), kenyaRequest())
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestService_Payload_StaleIsDataValidationFailure(t *testing.T) {
	p := kenyaPayload()
	p.GeneratedAt = fixedNow.Add(-25 * time.Hour)
	svc := newTestService(&fakeSource{payload: p})

	_, err := svc.Payload(context.Background(), kenyaRequest())

	var df *domain.DataValidationFailure
	require.ErrorAs(t, err, &df)
	assert.Equal(t, "generatedAt", df.Field)
}

func TestService_ResolveChart(t *testing.T) {
	src := &fakeSource{payload: kenyaPayload()}
	svc := newTestService(src)
	dr := kenyaRequest().DateRange

	_, err := svc.ResolveChart(context.Background(), domain.ChartRequestSpec{
		ChartType: domain.ChartTypePie,
		DataType:  domain.DataTypePredictionAccuracy,
		Region:    "Kenya",
		DateRange: dr,
	})
	var cf *domain.CompatibilityFailure
	require.ErrorAs(t, err, &cf)
	assert.Zero(t, src.calls, "incompatible specs are rejected before fetching")

	c, err := svc.ResolveChart(context.Background(), domain.ChartRequestSpec{
		ChartType: domain.ChartTypePie,
		DataType:  domain.DataTypeRiskDistribution,
		Region:    "Kenya",
		DateRange: dr,
	})
	require.NoError(t, err)
	pie := c.(*domain.PieChartData)
	require.Len(t, pie.Sections, 1)
	assert.Equal(t, "high", pie.Sections[0].Label)
	assert.Equal(t, 100.0, pie.Sections[0].Percentage)
}

func TestService_Dashboard(t *testing.T) {
	svc := newTestService(&fakeSource{payload: kenyaPayload()})

	specs := []domain.ChartRequestSpec{
		{ChartType: domain.ChartTypeLine, DataType: domain.DataTypeRiskTrends},
		{ChartType: domain.ChartTypeBar, DataType: domain.DataTypeAlertStatistics},
	}
	d, err := svc.Dashboard(context.Background(), kenyaRequest(), specs)
	require.NoError(t, err)

	require.Len(t, d.Charts, 2)
	assert.Equal(t, domain.ChartTypeLine, d.Charts[0].Type())
	assert.Equal(t, domain.ChartTypeBar, d.Charts[1].Type())
	assert.Equal(t, "Kenya", d.Charts[0].Metadata().Region)
	assert.Empty(t, specs[0].Region, "caller specs are not modified")

	high, ok := d.RiskDistribution[domain.RiskLevelHigh]
	require.True(t, ok)
	assert.Equal(t, int64(10000), high.PopulationCount)
	assert.InDelta(t, 0.9, high.AverageRisk, 1e-9)

	require.Len(t, d.VulnerabilityIndicators, 4)
	assert.Equal(t, domain.IndicatorHighRiskExposure, d.VulnerabilityIndicators[1].Name)
	assert.Equal(t, 1.0, d.VulnerabilityIndicators[1].Score)

	require.Len(t, d.CorrelationPoints, 1)
	assert.Equal(t, int64(9), d.CorrelationPoints[0].AlertCount)
	assert.InDelta(t, 1.0, d.CorrelationPoints[0].Effectiveness, 1e-9)
	assert.Equal(t, 0.9, d.Effectiveness.Coverage)
	assert.Equal(t, 1.0, d.Effectiveness.TruePositiveRate)
	assert.Len(t, d.SeverityEffectiveness, len(domain.Severities))
}

func TestService_Dashboard_IncompatibleSpecFailsWholeCall(t *testing.T) {
	src := &fakeSource{payload: kenyaPayload()}
	svc := newTestService(src)

	_, err := svc.Dashboard(context.Background(), kenyaRequest(), []domain.ChartRequestSpec{
		{ChartType: domain.ChartTypeLine, DataType: domain.DataTypeRiskTrends},
		{ChartType: domain.ChartTypeScatter, DataType: domain.DataTypeRiskTrends},
	})

	var cf *domain.CompatibilityFailure
	assert.ErrorAs(t, err, &cf)
	assert.Zero(t, src.calls)
}

func TestService_Series(t *testing.T) {
	points := []domain.SeriesPoint{{Label: "rainfall", Date: fixedNow, Value: 12}}
	svc := newTestService(&fakeSource{series: points})

	got, err := svc.Series(context.Background(), domain.DataTypeEnvironmentalTrends, kenyaRequest(), domain.SeriesConfig{})
	require.NoError(t, err)
	assert.Equal(t, points, got)

	svc = newTestService(&fakeSource{err: errors.New("timeout")})
	_, err = svc.Series(context.Background(), domain.DataTypeEnvironmentalTrends, kenyaRequest(), domain.SeriesConfig{})
	var sf *domain.ServerFailure
	assert.ErrorAs(t, err, &sf)
}

func TestService_PassThroughs(t *testing.T) {
	svc := newTestService(&fakeSource{})

	eff, err := svc.Effectiveness(0.5, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, eff)

	res, err := svc.Correlate([]float64{1, 2, 3}, []float64{3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, res.Coefficient, 1e-9)
	assert.Equal(t, domain.CorrelationStrong, res.Strength)

	indicators, err := svc.VulnerabilityIndicators(kenyaPayload().RiskTrends)
	require.NoError(t, err)
	assert.Equal(t, 1.0, indicators[1].Score)

	dist, err := svc.RiskDistribution(nil)
	require.NoError(t, err)
	assert.Empty(t, dist)
}

func TestGuard_RecoversPanic(t *testing.T) {
	err := guard("explode", func() error {
		var m map[string]int
		m["x"]++
		return nil
	})

	var inf *domain.InternalFailure
	require.ErrorAs(t, err, &inf)
	assert.Equal(t, "explode", inf.Op)
	assert.Equal(t, domain.KindInternal, inf.Kind())

	err = guard("plain", func() error { panic("boom") })
	require.ErrorAs(t, err, &inf)
	assert.Equal(t, "boom", inf.Cause)
}
