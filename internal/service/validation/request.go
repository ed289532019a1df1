package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
)

type RequestValidator struct {
	validate *validator.Validate
	limits   config.Limits
	now      Clock
}

func NewRequestValidator(limits config.Limits, now Clock) *RequestValidator {
	return &RequestValidator{
		validate: newValidate(),
		limits:   limits,
		now:      clockOrDefault(now),
	}
}

// Validate checks the request rules in order and returns the first violation as
// a *domain.ValidationFailure.
func (v *RequestValidator) Validate(req domain.AnalyticsRequest) (domain.AnalyticsRequest, error) {
	if err := v.validateRegion(req.Region); err != nil {
		return domain.AnalyticsRequest{}, err
	}
	if err := v.validateDateRange(req.DateRange); err != nil {
		return domain.AnalyticsRequest{}, err
	}
	if req.Filters != nil {
		if err := v.validateFilters(*req.Filters); err != nil {
			return domain.AnalyticsRequest{}, err
		}
	}
	return req, nil
}

func (v *RequestValidator) validateRegion(region string) error {
	if strings.TrimSpace(region) == "" {
		return domain.NewValidationFailure("region", "region is required", region)
	}
	if err := v.validate.Var(region, tagRegion); err != nil {
		return domain.NewValidationFailure("region",
			fmt.Sprintf("region must be between 2 and 100 characters, got %d", utf8.RuneCountInString(region)), region)
	}
	return nil
}

func (v *RequestValidator) validateDateRange(r domain.DateRange) error {
	if r.Start.After(r.End) {
		return domain.NewValidationFailure("dateRange", "start date must not be after end date", r.String())
	}

	maxYears := v.limits.MaxRangeYears
	if r.End.After(r.Start.AddDate(maxYears, 0, 0)) {
		return domain.NewValidationFailure("dateRange",
			fmt.Sprintf("date range must not exceed %d years", maxYears), r.String())
	}

	futureYears := v.limits.MaxFutureYears
	if r.Start.After(v.now().AddDate(futureYears, 0, 0)) {
		return domain.NewValidationFailure("dateRange",
			fmt.Sprintf("start date must not be more than %d year(s) in the future", futureYears), r.Start)
	}
	return nil
}

func (v *RequestValidator) validateFilters(f domain.AnalyticsFilters) error {
	if f.MinConfidence != nil {
		if err := v.validate.Var(*f.MinConfidence, tagUnitInterval); err != nil {
			return domain.NewValidationFailure("filters.minConfidence",
				"minimum confidence must be between 0 and 1", *f.MinConfidence)
		}
	}
	if f.MaxDataAgeHours != nil {
		if err := v.validate.Var(*f.MaxDataAgeHours, tagDataAgeHours); err != nil {
			return domain.NewValidationFailure("filters.maxDataAgeHours",
				"maximum data age must be between 1 and 8760 hours", *f.MaxDataAgeHours)
		}
	}
	if !f.AnyIncluded() {
		return domain.NewValidationFailure("filters", "at least one data category must be included", nil)
	}
	return nil
}
