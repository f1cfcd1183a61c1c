// Package quote prices a delivery order: it validates the user input, fetches
// the venue records, and combines distance, delivery fee and small order
// surcharge into a single Outcome.
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend-woltapp-completion/internal/geo"
	"backend-woltapp-completion/internal/logger"
	"backend-woltapp-completion/internal/money"
	"backend-woltapp-completion/internal/pricing"
	"backend-woltapp-completion/internal/validate"
)

// DefaultMaxDistance is the hard delivery cap in meters.
const DefaultMaxDistance = 2000

// Recorder receives quote and fetch observations.
type Recorder interface {
	QuoteOutcome(outcome, reason string)
	FetchDuration(endpoint string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) QuoteOutcome(string, string)         {}
func (nopRecorder) FetchDuration(string, time.Duration) {}

type Service struct {
	venues      VenueSource
	maxDistance int
	log         *logger.Log
	rec         Recorder
}

type Option func(*Service)

// WithMaxDistance sets the hard cap in meters. Zero derives the cap from the
// venue's terminal distance range.
func WithMaxDistance(meters int) Option {
	return func(s *Service) { s.maxDistance = meters }
}

func WithLogger(l *logger.Log) Option {
	return func(s *Service) { s.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.rec = r }
}

func NewService(venues VenueSource, opts ...Option) *Service {
	s := &Service{
		venues:      venues,
		maxDistance: DefaultMaxDistance,
		log:         logger.Nop(),
		rec:         nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote computes the price for req. It is safe for concurrent use.
func (s *Service) Quote(ctx context.Context, req Request) Outcome {
	out := s.quote(ctx, req)

	entry := s.log.WithComponent("quote").WithField("venue_slug", req.VenueSlug)
	switch out.Status {
	case StatusSuccess:
		s.rec.QuoteOutcome(out.Status.String(), "")
		entry.WithField("distance", out.Result.Distance).
			WithField("total_price", out.Result.TotalPrice).
			Info("quote priced")
	case StatusRejected:
		s.rec.QuoteOutcome(out.Status.String(), string(out.Rejection.Reason))
		entry.WithField("reason", out.Rejection.Reason).Debug("quote rejected")
	case StatusFailed:
		s.rec.QuoteOutcome(out.Status.String(), FailureReason(out.Err))
		entry.WithError(out.Err).Warn("quote failed")
	}
	return out
}

func (s *Service) quote(ctx context.Context, req Request) Outcome {
	in, violations, err := validate.Fields(validate.Input{
		VenueSlug: req.VenueSlug,
		CartValue: req.CartValue,
		UserLat:   req.UserLat,
		UserLon:   req.UserLon,
	})
	if len(violations) > 0 {
		return rejected(Rejection{Reason: ReasonInvalidInput, Violations: violations})
	}
	if err != nil {
		return failed(err)
	}

	static, dynamic, err := s.fetch(ctx, in.VenueSlug)
	if err != nil {
		return failed(err)
	}

	venue, err := geo.FromLonLat(static.Coordinates)
	if err != nil {
		return failed(&FetchError{Endpoint: EndpointStatic, Err: err})
	}
	distance := geo.Distance(in.User, venue)

	maxDistance := s.maxDistance
	if maxDistance == 0 {
		maxDistance = pricing.MaxDeliverableDistance(dynamic.DistanceRanges)
	}
	if maxDistance > 0 && distance > maxDistance {
		return rejected(Rejection{
			Reason:      ReasonDistanceTooFar,
			Distance:    distance,
			MaxDistance: maxDistance,
			CartValue:   in.CartValue,
		})
	}

	fee, err := pricing.DeliveryFee(distance, dynamic.BasePrice, dynamic.DistanceRanges)
	if errors.Is(err, pricing.ErrNotDeliverable) {
		if last := pricing.MaxDeliverableDistance(dynamic.DistanceRanges); last > 0 {
			maxDistance = last
		}
		return rejected(Rejection{
			Reason:      ReasonNotDeliverable,
			Distance:    distance,
			MaxDistance: maxDistance,
			CartValue:   in.CartValue,
		})
	}
	if err != nil {
		return failed(fmt.Errorf("venue %s: %w", in.VenueSlug, err))
	}

	surcharge := pricing.SmallOrderSurcharge(in.CartValue, dynamic.OrderMinimumNoSurcharge)
	total, err := money.Add(in.CartValue, surcharge, fee)
	if err != nil {
		return failed(fmt.Errorf("venue %s: total price: %w", in.VenueSlug, err))
	}
	return success(Result{
		CartValue:           in.CartValue,
		SmallOrderSurcharge: surcharge,
		DeliveryFee:         fee,
		TotalPrice:          total,
		Distance:            distance,
	})
}

// fetch loads static and dynamic venue data in parallel and waits for both.
func (s *Service) fetch(ctx context.Context, venueSlug string) (StaticData, DynamicData, error) {
	type staticRes struct {
		s   StaticData
		err error
	}
	type dynamicRes struct {
		d   DynamicData
		err error
	}
	// The first failure cancels the sibling request.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chStatic := make(chan staticRes, 1)
	chDynamic := make(chan dynamicRes, 1)

	go func() {
		start := time.Now()
		st, err := s.venues.GetStatic(ctx, venueSlug)
		s.rec.FetchDuration(EndpointStatic, time.Since(start))
		chStatic <- staticRes{s: st, err: err}
	}()
	go func() {
		start := time.Now()
		dy, err := s.venues.GetDynamic(ctx, venueSlug)
		s.rec.FetchDuration(EndpointDynamic, time.Since(start))
		chDynamic <- dynamicRes{d: dy, err: err}
	}()

	var (
		sdata StaticData
		ddata DynamicData
	)
	for i := 0; i < 2; i++ {
		select {
		case sr := <-chStatic:
			if sr.err != nil {
				return StaticData{}, DynamicData{}, &FetchError{Endpoint: EndpointStatic, Err: sr.err}
			}
			sdata = sr.s
		case dr := <-chDynamic:
			if dr.err != nil {
				return StaticData{}, DynamicData{}, &FetchError{Endpoint: EndpointDynamic, Err: dr.err}
			}
			ddata = dr.d
		case <-ctx.Done():
			return StaticData{}, DynamicData{}, ctx.Err()
		}
	}
	return sdata, ddata, nil
}

// Failure kinds returned by FailureReason.
const (
	FailureTimeout     = "timeout"
	FailureVenueConfig = "invalid_venue_config"
	FailureUpstream    = "upstream_error"
	FailureParse       = "invalid_coordinates"
	FailureInternal    = "internal"
)

// FailureReason classifies the error of a failed Outcome.
func FailureReason(err error) string {
	var (
		cerr *pricing.ConfigError
		ferr *FetchError
		perr *validate.ParseError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return FailureTimeout
	case errors.As(err, &cerr), errors.Is(err, money.ErrOverflow):
		return FailureVenueConfig
	case errors.As(err, &ferr):
		return FailureUpstream
	case errors.As(err, &perr):
		return FailureParse
	default:
		return FailureInternal
	}
}
