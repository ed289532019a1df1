package store

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"

	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
)

const (
	tableRegions             = "regions"
	tablePredictions         = "predictions"
	tableEnvironmentalTrends = "environmental_trends"
	tableRiskTrends          = "risk_trends"
	tableDataQuality         = "data_quality"
	tableAlerts              = "alerts"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// RetryPolicy controls how often a failed read is repeated before giving up.
type RetryPolicy struct {
	Count    uint64
	Interval time.Duration
}

func isPermanent(err error) bool {
	return errors.Is(err, constants.ErrDBNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (s *store) retry(ctx context.Context, op func() error) error {
	return backoff.Retry(
		func() error {
			err := op()
			if err != nil && isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryPolicy.Interval), s.retryPolicy.Count),
			ctx,
		),
	)
}
