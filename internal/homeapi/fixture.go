package homeapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"backend-woltapp-completion/internal/pricing"
	"backend-woltapp-completion/internal/quote"
)

var ErrVenueNotFound = errors.New("venue not found")

type fixtureFile struct {
	Venues map[string]fixtureVenue `yaml:"venues"`
}

type fixtureVenue struct {
	// Location is [lon, lat], matching the API.
	Location                []float64               `yaml:"location"`
	BasePrice               int64                   `yaml:"base_price"`
	OrderMinimumNoSurcharge int64                   `yaml:"order_minimum_no_surcharge"`
	DistanceRanges          []pricing.DistanceRange `yaml:"distance_ranges"`
}

// FixtureSource serves venues from a YAML file instead of the API.
type FixtureSource struct {
	venues map[string]fixtureVenue
}

var _ quote.VenueSource = (*FixtureSource)(nil)

func LoadFixtures(path string) (*FixtureSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read venue fixtures: %w", err)
	}
	defer f.Close()
	return ParseFixtures(f)
}

func ParseFixtures(r io.Reader) (*FixtureSource, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("cannot parse venue fixtures: %w", err)
	}
	for slug, v := range file.Venues {
		if len(v.Location) < 2 {
			return nil, fmt.Errorf("venue %q: %w: location needs [lon, lat]", slug, ErrIncompleteResponse)
		}
	}
	return &FixtureSource{venues: file.Venues}, nil
}

func (f *FixtureSource) GetStatic(ctx context.Context, venueSlug string) (quote.StaticData, error) {
	v, err := f.lookup(ctx, venueSlug)
	if err != nil {
		return quote.StaticData{}, err
	}
	return quote.StaticData{Coordinates: append([]float64(nil), v.Location...)}, nil
}

func (f *FixtureSource) GetDynamic(ctx context.Context, venueSlug string) (quote.DynamicData, error) {
	v, err := f.lookup(ctx, venueSlug)
	if err != nil {
		return quote.DynamicData{}, err
	}
	return quote.DynamicData{
		BasePrice:               v.BasePrice,
		DistanceRanges:          append([]pricing.DistanceRange(nil), v.DistanceRanges...),
		OrderMinimumNoSurcharge: v.OrderMinimumNoSurcharge,
	}, nil
}

func (f *FixtureSource) lookup(ctx context.Context, venueSlug string) (fixtureVenue, error) {
	if err := ctx.Err(); err != nil {
		return fixtureVenue{}, err
	}
	v, ok := f.venues[venueSlug]
	if !ok {
		return fixtureVenue{}, fmt.Errorf("%w: %s", ErrVenueNotFound, venueSlug)
	}
	return v, nil
}
