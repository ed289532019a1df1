// Package validation holds the request and payload guards that run before any
// analytics data reaches a chart or a derived metric.
package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	tagUnitInterval = "gte=0,lte=1"
	tagRegion       = "required,min=2,max=100"
	tagDataAgeHours = "gte=1,lte=8760"
)

// Clock returns the current time. Validators take one so tests can pin "now".
type Clock func() time.Time

func newValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func clockOrDefault(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}
