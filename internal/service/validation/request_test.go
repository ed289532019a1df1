package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestRequestValidator() *RequestValidator {
	return NewRequestValidator(config.DefaultLimits(), func() time.Time { return fixedNow })
}

func ptr[T any](v T) *T { return &v }

func validRequest() domain.AnalyticsRequest {
	return domain.AnalyticsRequest{
		Region:    "Kenya",
		DateRange: domain.LastDays(fixedNow, 30),
	}
}

func TestRequestValidator_Valid(t *testing.T) {
	v := newTestRequestValidator()

	req := validRequest()
	got, err := v.Validate(req)
	require.NoError(t, err)
	assert.Equal(t, req, got)

	filters := domain.DefaultFilters()
	filters.MinConfidence = ptr(0.0)
	filters.MaxDataAgeHours = ptr(8760)
	req.Filters = &filters
	_, err = v.Validate(req)
	assert.NoError(t, err)
}

func TestRequestValidator_Rules(t *testing.T) {
	v := newTestRequestValidator()

	tests := []struct {
		name   string
		mutate func(r *domain.AnalyticsRequest)
		field  string
	}{
		{
			name:   "empty region",
			mutate: func(r *domain.AnalyticsRequest) { r.Region = "" },
			field:  "region",
		},
		{
			name:   "blank region",
			mutate: func(r *domain.AnalyticsRequest) { r.Region = "   " },
			field:  "region",
		},
		{
			name:   "region too short",
			mutate: func(r *domain.AnalyticsRequest) { r.Region = "K" },
			field:  "region",
		},
		{
			name:   "region too long",
			mutate: func(r *domain.AnalyticsRequest) { r.Region = strings.Repeat("a", 101) },
			field:  "region",
		},
		{
			name: "start after end",
			mutate: func(r *domain.AnalyticsRequest) {
				r.DateRange = domain.NewDateRange(fixedNow, fixedNow.Add(-time.Hour))
			},
			field: "dateRange",
		},
		{
			name: "longer than five years",
			mutate: func(r *domain.AnalyticsRequest) {
				r.DateRange = domain.NewDateRange(fixedNow.AddDate(-5, 0, -1), fixedNow)
			},
			field: "dateRange",
		},
		{
			name: "starts too far in the future",
			mutate: func(r *domain.AnalyticsRequest) {
				start := fixedNow.AddDate(1, 0, 1)
				r.DateRange = domain.NewDateRange(start, start.AddDate(0, 0, 1))
			},
			field: "dateRange",
		},
		{
			name: "min confidence above one",
			mutate: func(r *domain.AnalyticsRequest) {
				f := domain.DefaultFilters()
				f.MinConfidence = ptr(1.5)
				r.Filters = &f
			},
			field: "filters.minConfidence",
		},
		{
			name: "min confidence negative",
			mutate: func(r *domain.AnalyticsRequest) {
				f := domain.DefaultFilters()
				f.MinConfidence = ptr(-0.1)
				r.Filters = &f
			},
			field: "filters.minConfidence",
		},
		{
			name: "data age zero",
			mutate: func(r *domain.AnalyticsRequest) {
				f := domain.DefaultFilters()
				f.MaxDataAgeHours = ptr(0)
				r.Filters = &f
			},
			field: "filters.maxDataAgeHours",
		},
		{
			name: "data age above a year",
			mutate: func(r *domain.AnalyticsRequest) {
				f := domain.DefaultFilters()
				f.MaxDataAgeHours = ptr(8761)
				r.Filters = &f
			},
			field: "filters.maxDataAgeHours",
		},
		{
			name: "no category included",
			mutate: func(r *domain.AnalyticsRequest) {
				r.Filters = &domain.AnalyticsFilters{MinConfidence: ptr(0.5)}
			},
			field: "filters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := v.Validate(req)
			require.Error(t, err)

			var vf *domain.ValidationFailure
			require.ErrorAs(t, err, &vf)
			assert.Equal(t, tt.field, vf.Field)
			assert.NotEmpty(t, vf.Message)
		})
	}
}

func TestRequestValidator_ExactlyFiveYearsIsAllowed(t *testing.T) {
	v := newTestRequestValidator()
	req := validRequest()
	req.DateRange = domain.NewDateRange(fixedNow.AddDate(-5, 0, 0), fixedNow)

	_, err := v.Validate(req)
	assert.NoError(t, err)
}

func TestRequestValidator_FirstViolationWins(t *testing.T) {
	v := newTestRequestValidator()
	req := domain.AnalyticsRequest{
		Region:    "",
		DateRange: domain.NewDateRange(fixedNow, fixedNow.Add(-time.Hour)),
		Filters:   &domain.AnalyticsFilters{},
	}

	_, err := v.Validate(req)
	assert.Equal(t, "region", domain.FieldOf(err))
}

func TestRequestValidator_AllFlagsFalseAlwaysFails(t *testing.T) {
	v := newTestRequestValidator()
	for _, conf := range []*float64{nil, ptr(0.0), ptr(0.5), ptr(1.0)} {
		for _, age := range []*int{nil, ptr(1), ptr(24), ptr(8760)} {
			req := validRequest()
			req.Filters = &domain.AnalyticsFilters{MinConfidence: conf, MaxDataAgeHours: age}

			_, err := v.Validate(req)
			assert.Equal(t, "filters", domain.FieldOf(err))
		}
	}
}
