package quote

import (
	"context"
	"fmt"

	"backend-woltapp-completion/internal/pricing"
	"backend-woltapp-completion/internal/validate"
)

// Endpoint names used in fetch failures.
const (
	EndpointStatic  = "venue static data"
	EndpointDynamic = "venue dynamic data"
)

// StaticData contains only the fields needed from the venue static endpoint.
type StaticData struct {
	// Coordinates are ordered [lon, lat] as published by the venue.
	Coordinates []float64
}

// DynamicData contains only the fields needed from the venue dynamic endpoint.
type DynamicData struct {
	BasePrice               int64
	DistanceRanges          []pricing.DistanceRange
	OrderMinimumNoSurcharge int64
}

// VenueSource supplies the two venue records a quote depends on.
type VenueSource interface {
	GetStatic(ctx context.Context, venueSlug string) (StaticData, error)
	GetDynamic(ctx context.Context, venueSlug string) (DynamicData, error)
}

// Request carries the raw user fields of a quote.
type Request struct {
	VenueSlug string
	CartValue string
	UserLat   string
	UserLon   string
}

// Result is a priced delivery order. Amounts are in cents.
type Result struct {
	CartValue           int64 `json:"cart_value"`
	SmallOrderSurcharge int64 `json:"small_order_surcharge"`
	DeliveryFee         int64 `json:"delivery_fee"`
	TotalPrice          int64 `json:"total_price"`
	Distance            int   `json:"distance"`
}

type Status int

const (
	StatusSuccess Status = iota
	StatusRejected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

type Reason string

const (
	ReasonInvalidInput   Reason = "invalid_input"
	ReasonDistanceTooFar Reason = "distance_too_far"
	ReasonNotDeliverable Reason = "not_deliverable"
)

// Rejection is a completed "no quote" answer. It is not an error.
type Rejection struct {
	Reason     Reason
	Violations validate.Violations
	// Distance and MaxDistance are set for the two distance reasons.
	Distance    int
	MaxDistance int
	CartValue   int64
}

func (r Rejection) Message() string {
	switch r.Reason {
	case ReasonInvalidInput:
		return fmt.Sprintf("invalid fields: %v", r.Violations.Fields())
	case ReasonDistanceTooFar, ReasonNotDeliverable:
		if r.MaxDistance > 0 {
			return fmt.Sprintf("Delivery not available for this location (%dm). Maximum delivery distance is %dm.", r.Distance, r.MaxDistance)
		}
		return fmt.Sprintf("Delivery not available for this location (%dm).", r.Distance)
	default:
		return string(r.Reason)
	}
}

// Outcome is exactly one of a Result, a Rejection or a failure. On distance
// rejections Result still carries the cart value and distance with zero fees.
type Outcome struct {
	Status    Status
	Result    Result
	Rejection Rejection
	Err       error
}

func success(r Result) Outcome {
	return Outcome{Status: StatusSuccess, Result: r}
}

func rejected(r Rejection) Outcome {
	o := Outcome{Status: StatusRejected, Rejection: r}
	if r.Reason != ReasonInvalidInput {
		o.Result = Result{CartValue: r.CartValue, Distance: r.Distance}
	}
	return o
}

func failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// FetchError wraps a failure to obtain one of the venue records.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
