package collector

import (
	"errors"
	"fmt"
	"time"
)

// DefaultPeriodSeconds is the default sampling granularity.
const DefaultPeriodSeconds = 60

// Params identify the endpoint variant and time window to retrieve
// metrics for. Immutable input to both collectors.
type Params struct {
	EndpointName  string
	VariantName   string
	StartTime     time.Time
	EndTime       time.Time
	PeriodSeconds int32
}

// WithDefaults returns a copy with the default period applied when unset.
func (p Params) WithDefaults() Params {
	if p.PeriodSeconds == 0 {
		p.PeriodSeconds = DefaultPeriodSeconds
	}
	return p
}

// Validate checks the parameter invariants: non-empty identities,
// start <= end, positive period.
func (p Params) Validate() error {
	if p.EndpointName == "" {
		return errors.New("endpoint name must not be empty")
	}
	if p.VariantName == "" {
		return errors.New("variant name must not be empty")
	}
	if p.StartTime.After(p.EndTime) {
		return fmt.Errorf("start time %s is after end time %s",
			p.StartTime.Format(time.RFC3339), p.EndTime.Format(time.RFC3339))
	}
	if p.PeriodSeconds <= 0 {
		return fmt.Errorf("period must be positive, got %d", p.PeriodSeconds)
	}
	return nil
}
