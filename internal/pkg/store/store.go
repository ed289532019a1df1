package store

import (
	"context"
	"time"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	ListRegions(ctx context.Context) ([]*domain.Region, error)
	GetRegionByName(ctx context.Context, regionName string) (*domain.Region, error)
	Fetch(ctx context.Context, region string, dateRange domain.DateRange, filters domain.AnalyticsFilters) (*domain.AnalyticsPayload, error)
	FetchSeries(ctx context.Context, dataType domain.DataType, region string, dateRange domain.DateRange, cfg domain.SeriesConfig) ([]domain.SeriesPoint, error)
}

type store struct {
	pool        Pool
	retryPolicy RetryPolicy
	now         func() time.Time
}

func NewStore(pool Pool, retryPolicy RetryPolicy) Store {
	return &store{pool: pool, retryPolicy: retryPolicy, now: time.Now}
}
