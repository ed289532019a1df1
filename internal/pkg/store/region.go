package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/store/xpgx"
)

var regionsColumns = []string{"id", "name", "country", "latitude", "longitude", "created_at", "updated_at"}

func listRegionsQuery() squirrel.SelectBuilder {
	return builder().Select(regionsColumns...).
		From(tableRegions).
		OrderBy("country, name")
}

func regionByNameQuery(regionName string) squirrel.SelectBuilder {
	return builder().Select(regionsColumns...).
		From(tableRegions).
		Where(squirrel.Eq{"name": regionName})
}

func (s *store) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	var selected []*domain.Region
	err := s.retry(ctx, func() error {
		regions, err := xpgx.Selectx[domain.Region](ctx, s.pool, listRegionsQuery())
		if err != nil {
			return err
		}

		selected = make([]*domain.Region, 0, len(regions))
		for i := range regions {
			selected = append(selected, &regions[i])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store.ListRegions: %w", wrapErr(err))
	}

	return selected, nil
}

func (s *store) GetRegionByName(ctx context.Context, regionName string) (*domain.Region, error) {
	selected, err := s.getRegionByName(ctx, regionName)
	if err != nil {
		return nil, fmt.Errorf("store.GetRegionByName, region-%s: %w", regionName, err)
	}
	return selected, nil
}

func (s *store) getRegionByName(ctx context.Context, regionName string) (*domain.Region, error) {
	selected, err := xpgx.Getx[domain.Region](ctx, s.pool, regionByNameQuery(regionName))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &selected, nil
}
