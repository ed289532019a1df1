package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
	"github.com/ougirez/malaria-analytics/internal/pkg/store/xpgx"
)

// seriesSource describes where a data type's raw samples live.
type seriesSource struct {
	table      string
	label      string
	timeColumn string
	value      string
}

var seriesSources = map[domain.DataType][]seriesSource{
	domain.DataTypeEnvironmentalTrends:      {{tableEnvironmentalTrends, "factor", "recorded_at", "value"}},
	domain.DataTypeEnvironmentalCorrelation: {{tableEnvironmentalTrends, "factor", "recorded_at", "value"}},
	domain.DataTypeRiskTrends:               {{tableRiskTrends, "risk_level", "recorded_at", "risk_score"}},
	domain.DataTypeTemporalPatterns:         {{tableRiskTrends, "risk_level", "recorded_at", "risk_score"}},
	domain.DataTypeRiskDistribution:         {{tableRiskTrends, "risk_level", "recorded_at", "population_at_risk"}},
	domain.DataTypePredictionAccuracy:       {{tablePredictions, "model", "generated_at", "accuracy"}},
	domain.DataTypeModelComparison:          {{tablePredictions, "model", "generated_at", "accuracy"}},
	domain.DataTypeAlertStatistics:          {{tableAlerts, "severity", "issued_at", "1"}},
	domain.DataTypeDataQuality: {
		{tableDataQuality, "'completeness'", "recorded_at", "completeness"},
		{tableDataQuality, "'accuracy'", "recorded_at", "accuracy"},
	},
}

func seriesQuery(src seriesSource, regionID int64, from, to time.Time, cfg domain.SeriesConfig) squirrel.SelectBuilder {
	query := builder().Select(
		src.label+" as label",
		src.timeColumn+" as recorded_at",
		src.value+"::float8 as value",
	).
		From(src.table).
		Where(squirrel.Eq{"region_id": regionID}).
		Where(between(src.timeColumn, from, to))

	if cfg.Factor != nil && src.label[0] != '\'' {
		query = query.Where(squirrel.Eq{src.label: *cfg.Factor})
	}
	if cfg.Limit > 0 {
		query = query.Limit(cfg.Limit)
	}

	return query.OrderBy(src.timeColumn)
}

func (s *store) FetchSeries(
	ctx context.Context,
	dataType domain.DataType,
	region string,
	dateRange domain.DateRange,
	cfg domain.SeriesConfig,
) ([]domain.SeriesPoint, error) {
	sources, ok := seriesSources[dataType]
	if !ok {
		return nil, fmt.Errorf("store.FetchSeries, data_type-%s: %w", dataType, constants.ErrBadRequest)
	}

	var points []domain.SeriesPoint
	err := s.retry(ctx, func() error {
		r, err := s.getRegionByName(ctx, region)
		if err != nil {
			return fmt.Errorf("getRegionByName: %w", err)
		}

		points = points[:0]
		for _, src := range sources {
			selected, err := xpgx.Selectx[domain.SeriesPoint](ctx, s.pool, seriesQuery(src, r.ID, dateRange.Start, dateRange.End, cfg))
			if err != nil {
				return fmt.Errorf("%s: %w", src.table, wrapErr(err))
			}
			points = append(points, selected...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store.FetchSeries, region-%s, data_type-%s: %w", region, dataType, err)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if points == nil {
		points = []domain.SeriesPoint{}
	}
	return points, nil
}
