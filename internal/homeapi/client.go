package homeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"backend-woltapp-completion/internal/logger"
	"backend-woltapp-completion/internal/quote"
)

var ErrIncompleteResponse = errors.New("incomplete venue response")

// StatusError is a non-200 answer from the Home Assignment API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Client fetches venue static and dynamic data from the Home Assignment API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Log
}

type Option func(*Client)

// WithRateLimit caps outbound requests. Requests wait for a token and fail
// only when their context ends first.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

func WithLogger(l *logger.Log) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ quote.VenueSource = (*Client)(nil)

func (c *Client) GetStatic(ctx context.Context, venueSlug string) (quote.StaticData, error) {
	var raw staticResponse
	if err := c.get(ctx, venueSlug, "static", &raw); err != nil {
		return quote.StaticData{}, err
	}
	if raw.VenueRaw == nil || raw.VenueRaw.Location == nil {
		return quote.StaticData{}, fmt.Errorf("%w: missing venue_raw.location", ErrIncompleteResponse)
	}
	if len(raw.VenueRaw.Location.Coordinates) < 2 {
		return quote.StaticData{}, fmt.Errorf("%w: location needs [lon, lat]", ErrIncompleteResponse)
	}
	coords := make([]float64, 0, len(raw.VenueRaw.Location.Coordinates))
	for i, v := range raw.VenueRaw.Location.Coordinates {
		if v == nil {
			return quote.StaticData{}, fmt.Errorf("%w: location.coordinates[%d] is null", ErrIncompleteResponse, i)
		}
		coords = append(coords, *v)
	}
	return quote.StaticData{Coordinates: coords}, nil
}

func (c *Client) GetDynamic(ctx context.Context, venueSlug string) (quote.DynamicData, error) {
	var raw dynamicResponse
	if err := c.get(ctx, venueSlug, "dynamic", &raw); err != nil {
		return quote.DynamicData{}, err
	}
	if raw.VenueRaw == nil || raw.VenueRaw.DeliverySpecs == nil {
		return quote.DynamicData{}, fmt.Errorf("%w: missing venue_raw.delivery_specs", ErrIncompleteResponse)
	}
	specs := raw.VenueRaw.DeliverySpecs
	switch {
	case specs.OrderMinimumNoSurcharge == nil:
		return quote.DynamicData{}, fmt.Errorf("%w: missing order_minimum_no_surcharge", ErrIncompleteResponse)
	case specs.DeliveryPricing == nil:
		return quote.DynamicData{}, fmt.Errorf("%w: missing delivery_pricing", ErrIncompleteResponse)
	case specs.DeliveryPricing.BasePrice == nil:
		return quote.DynamicData{}, fmt.Errorf("%w: missing delivery_pricing.base_price", ErrIncompleteResponse)
	}
	return quote.DynamicData{
		BasePrice:               *specs.DeliveryPricing.BasePrice,
		DistanceRanges:          specs.DeliveryPricing.DistanceRanges,
		OrderMinimumNoSurcharge: *specs.OrderMinimumNoSurcharge,
	}, nil
}

func (c *Client) get(ctx context.Context, venueSlug, kind string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u := fmt.Sprintf("%s/home-assignment-api/v1/venues/%s/%s", c.baseURL, url.PathEscape(venueSlug), kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		serr := &StatusError{StatusCode: resp.StatusCode, Message: upstreamMessage(resp.StatusCode, b)}
		c.log.WithComponent("homeapi").WithFields(map[string]any{
			"venue_slug": venueSlug,
			"endpoint":   kind,
			"status":     resp.StatusCode,
		}).Warn("venue request rejected")
		return serr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", kind, err)
	}
	return nil
}

func upstreamMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(status)
}
