package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
	"github.com/ougirez/malaria-analytics/internal/pkg/store/xpgx"
)

var (
	predictionColumns    = []string{"region_id", "model", "accuracy", "generated_at"}
	environmentalColumns = []string{"factor", "recorded_at", "value"}
	riskTrendColumns     = []string{"region_id", "recorded_at", "risk_level", "risk_score", "population_at_risk", "latitude", "longitude", "confidence"}
	dataQualityColumns   = []string{"completeness", "accuracy"}
	alertColumns         = []string{"issued_at", "severity", "false_positive", "delivered", "response_ms"}
)

func between(column string, from, to time.Time) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{column: from},
		squirrel.LtOrEq{column: to},
	}
}

func predictionsQuery(regionID int64, from, to time.Time) squirrel.SelectBuilder {
	return builder().Select(predictionColumns...).
		From(tablePredictions).
		Where(squirrel.Eq{"region_id": regionID}).
		Where(between("generated_at", from, to)).
		OrderBy("generated_at desc")
}

func environmentalTrendsQuery(regionID int64, from, to time.Time) squirrel.SelectBuilder {
	return builder().Select(environmentalColumns...).
		From(tableEnvironmentalTrends).
		Where(squirrel.Eq{"region_id": regionID}).
		Where(between("recorded_at", from, to)).
		OrderBy("recorded_at", "factor")
}

func riskTrendsQuery(regionID int64, from, to time.Time, minConfidence *float64) squirrel.SelectBuilder {
	query := builder().Select(riskTrendColumns...).
		From(tableRiskTrends).
		Where(squirrel.Eq{"region_id": regionID}).
		Where(between("recorded_at", from, to))

	if minConfidence != nil {
		query = query.Where(squirrel.GtOrEq{"confidence": *minConfidence})
	}

	return query.OrderBy("recorded_at")
}

func dataQualityQuery(regionID int64, to time.Time) squirrel.SelectBuilder {
	return builder().Select(dataQualityColumns...).
		From(tableDataQuality).
		Where(squirrel.Eq{"region_id": regionID}).
		Where(squirrel.LtOrEq{"recorded_at": to}).
		OrderBy("recorded_at desc").
		Limit(1)
}

func alertsQuery(regionID int64, from, to time.Time) squirrel.SelectBuilder {
	return builder().Select(alertColumns...).
		From(tableAlerts).
		Where(squirrel.Eq{"region_id": regionID}).
		Where(between("issued_at", from, to)).
		OrderBy("issued_at")
}

// window narrows the requested range by the max data age filter.
func (s *store) window(dr domain.DateRange, f domain.AnalyticsFilters) (time.Time, time.Time) {
	from := dr.Start
	if f.MaxDataAgeHours != nil {
		cutoff := s.now().Add(-time.Duration(*f.MaxDataAgeHours) * time.Hour)
		if cutoff.After(from) {
			from = cutoff
		}
	}
	return from, dr.End
}

func (s *store) Fetch(
	ctx context.Context,
	region string,
	dateRange domain.DateRange,
	filters domain.AnalyticsFilters,
) (*domain.AnalyticsPayload, error) {
	var payload *domain.AnalyticsPayload
	err := s.retry(ctx, func() error {
		var err error
		payload, err = s.fetch(ctx, region, dateRange, filters)
		if err != nil && !isPermanent(err) {
			logger.Warnf(ctx, "store.Fetch, region-%s: retrying: %s", region, err.Error())
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store.Fetch, region-%s: %w", region, err)
	}

	return payload, nil
}

func (s *store) fetch(
	ctx context.Context,
	regionName string,
	dateRange domain.DateRange,
	filters domain.AnalyticsFilters,
) (*domain.AnalyticsPayload, error) {
	region, err := s.getRegionByName(ctx, regionName)
	if err != nil {
		return nil, fmt.Errorf("getRegionByName: %w", err)
	}

	from, to := s.window(dateRange, filters)
	payload := &domain.AnalyticsPayload{
		Region:              region.Name,
		GeneratedAt:         s.now().UTC(),
		EnvironmentalTrends: []domain.EnvironmentalTrend{},
		RiskTrends:          []domain.RiskTrend{},
	}

	if filters.IncludePredictions {
		rows, err := xpgx.Selectx[domain.PredictionRow](ctx, s.pool, predictionsQuery(region.ID, from, to))
		if err != nil {
			return nil, fmt.Errorf("predictions: %w", wrapErr(err))
		}
		payload.PredictionAccuracy, payload.ModelMetrics = summarizePredictions(rows)
	}

	if filters.IncludeEnvironmental {
		trends, err := xpgx.Selectx[domain.EnvironmentalTrend](ctx, s.pool, environmentalTrendsQuery(region.ID, from, to))
		if err != nil {
			return nil, fmt.Errorf("environmental trends: %w", wrapErr(err))
		}
		payload.EnvironmentalTrends = trends
	}

	if filters.IncludeRisk {
		rows, err := xpgx.Selectx[domain.RiskTrendRow](ctx, s.pool, riskTrendsQuery(region.ID, from, to, filters.MinConfidence))
		if err != nil {
			return nil, fmt.Errorf("risk trends: %w", wrapErr(err))
		}
		payload.RiskTrends, err = riskTrendsFromRows(rows)
		if err != nil {
			return nil, err
		}
	}

	if filters.IncludeDataQuality {
		quality, err := xpgx.Getx[domain.DataQuality](ctx, s.pool, dataQualityQuery(region.ID, to))
		switch err = wrapErr(err); {
		case errors.Is(err, constants.ErrDBNotFound):
		case err != nil:
			return nil, fmt.Errorf("data quality: %w", err)
		default:
			payload.DataQuality = quality
		}
	}

	if filters.IncludeAlerts {
		rows, err := xpgx.Selectx[domain.AlertRow](ctx, s.pool, alertsQuery(region.ID, from, to))
		if err != nil {
			return nil, fmt.Errorf("alerts: %w", wrapErr(err))
		}
		payload.AlertStatistics = alertStatistics(rows)
	}

	return payload, nil
}

// summarizePredictions expects rows newest first. The newest row gives the
// headline accuracy; per-model accuracy is the mean over the window.
func summarizePredictions(rows []domain.PredictionRow) (float64, []domain.ModelMetric) {
	if len(rows) == 0 {
		return 0, nil
	}

	type acc struct {
		sum decimal.Decimal
		n   int64
	}
	var (
		order  []string
		models = make(map[string]*acc)
	)
	for _, r := range rows {
		a, ok := models[r.Model]
		if !ok {
			a = &acc{}
			models[r.Model] = a
			order = append(order, r.Model)
		}
		a.sum = a.sum.Add(decimal.NewFromFloat(r.Accuracy))
		a.n++
	}

	metrics := make([]domain.ModelMetric, 0, len(order))
	for _, m := range order {
		a := models[m]
		metrics = append(metrics, domain.ModelMetric{
			Model:    m,
			Accuracy: a.sum.Div(decimal.NewFromInt(a.n)).InexactFloat64(),
		})
	}
	return rows[0].Accuracy, metrics
}

func riskTrendsFromRows(rows []domain.RiskTrendRow) ([]domain.RiskTrend, error) {
	trends := make([]domain.RiskTrend, 0, len(rows))
	for _, r := range rows {
		level, err := domain.ParseRiskLevel(r.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("risk trend at %s: %w", r.RecordedAt.Format(time.RFC3339), err)
		}
		trends = append(trends, domain.RiskTrend{
			Date:             r.RecordedAt,
			RiskLevel:        level,
			RiskScore:        r.RiskScore,
			PopulationAtRisk: r.PopulationAtRisk,
			Coordinates:      domain.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
			Confidence:       r.Confidence,
		})
	}
	return trends, nil
}

func alertStatistics(rows []domain.AlertRow) *domain.AlertStatistics {
	stats := &domain.AlertStatistics{
		BySeverity:  make(map[domain.Severity]int64),
		DailyCounts: make(map[string]int64),
	}

	var delivered, responseMillis int64
	for _, r := range rows {
		stats.TotalAlerts++
		stats.BySeverity[domain.Severity(r.Severity)]++
		stats.DailyCounts[domain.DayKey(r.IssuedAt)]++
		if r.FalsePositive {
			stats.FalsePositives++
		}
		if r.Delivered {
			delivered++
		}
		responseMillis += r.ResponseMillis
	}

	if stats.TotalAlerts > 0 {
		stats.DeliveryRate = float64(delivered) / float64(stats.TotalAlerts)
		stats.AverageResponseTime = time.Duration(responseMillis/stats.TotalAlerts) * time.Millisecond
	}
	return stats
}
