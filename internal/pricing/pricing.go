// Package pricing computes delivery fees from a venue's distance ranges and
// the small order surcharge from its cart minimum. Amounts are in cents.
package pricing

import (
	"errors"
	"fmt"

	"backend-woltapp-completion/internal/money"
)

var (
	// ErrNotDeliverable means no range prices the distance.
	ErrNotDeliverable   = errors.New("delivery not available for this distance")
	ErrNegativeDistance = errors.New("distance cannot be negative")

	ErrNoRanges      = errors.New("no distance ranges configured")
	ErrFirstRangeMin = errors.New("first distance range must start at 0")
	ErrRangeGap      = errors.New("distance ranges are not contiguous")
)

// DistanceRange prices distances in [Min, Max). Max 0 marks the terminal
// range beyond which delivery is not available.
type DistanceRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
	// A is a flat amount in cents.
	A int64 `json:"a" yaml:"a"`
	// B is a rate in cents per 10 meters.
	B int64 `json:"b" yaml:"b"`
}

func (r DistanceRange) Contains(distance int) bool {
	return distance >= r.Min && r.Max != 0 && distance < r.Max
}

// ConfigError reports an inconsistent distance range table supplied by a venue.
type ConfigError struct {
	// Index of the first offending range, -1 when the table is empty.
	Index int
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return "invalid distance ranges: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid distance ranges at index %d: %s", e.Index, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidateRanges checks that ranges start at 0 and have no gaps or overlaps.
func ValidateRanges(ranges []DistanceRange) error {
	if len(ranges) == 0 {
		return &ConfigError{Index: -1, Err: ErrNoRanges}
	}
	if ranges[0].Min != 0 {
		return &ConfigError{Index: 0, Err: ErrFirstRangeMin}
	}
	for i := 0; i < len(ranges)-1; i++ {
		if ranges[i].Max != ranges[i+1].Min {
			return &ConfigError{Index: i, Err: fmt.Errorf("%w: max %d != next min %d", ErrRangeGap, ranges[i].Max, ranges[i+1].Min)}
		}
	}
	return nil
}

// SelectRange returns the first range containing distance.
func SelectRange(ranges []DistanceRange, distance int) (DistanceRange, bool) {
	for _, r := range ranges {
		if r.Contains(distance) {
			return r, true
		}
	}
	return DistanceRange{}, false
}

// DeliveryFee returns baseFee + a + round(b * distance / 10) for the range
// containing distance. Halves are rounded up.
func DeliveryFee(distance int, baseFee int64, ranges []DistanceRange) (int64, error) {
	if distance < 0 {
		return 0, ErrNegativeDistance
	}
	if err := ValidateRanges(ranges); err != nil {
		return 0, err
	}
	for i, r := range ranges {
		if !r.Contains(distance) {
			continue
		}
		perDistance, err := money.Mul(r.B, int64(distance))
		if err != nil {
			return 0, &ConfigError{Index: i, Err: err}
		}
		fee, err := money.Add(baseFee, r.A, divRoundHalfUp(perDistance, 10))
		if err != nil {
			return 0, &ConfigError{Index: i, Err: err}
		}
		return fee, nil
	}
	return 0, ErrNotDeliverable
}

// SmallOrderSurcharge is the amount missing from cartValue to reach minimum.
func SmallOrderSurcharge(cartValue, minimum int64) int64 {
	if minimum <= cartValue {
		return 0
	}
	return minimum - cartValue
}

// MaxDeliverableDistance returns the Min of the terminal range, or 0 when the
// table has none.
func MaxDeliverableDistance(ranges []DistanceRange) int {
	if len(ranges) == 0 {
		return 0
	}
	last := ranges[len(ranges)-1]
	if last.Max != 0 {
		return 0
	}
	return last.Min
}

func divRoundHalfUp(n, d int64) int64 {
	// floor division first, so n near the int64 limits cannot overflow
	q, r := n/d, n%d
	if r < 0 {
		q--
		r += d
	}
	if r >= d-r {
		q++
	}
	return q
}
