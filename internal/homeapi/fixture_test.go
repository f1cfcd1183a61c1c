package homeapi

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-woltapp-completion/internal/quote"
)

func TestLoadFixtures(t *testing.T) {
	src, err := LoadFixtures("testdata/venues.yml")
	require.NoError(t, err)

	st, err := src.GetStatic(context.Background(), "home-assignment-venue-helsinki")
	require.NoError(t, err)
	assert.Equal(t, []float64{24.92813512, 60.17012143}, st.Coordinates)

	dy, err := src.GetDynamic(context.Background(), "home-assignment-venue-stockholm")
	require.NoError(t, err)
	assert.Equal(t, int64(190), dy.BasePrice)
	assert.Equal(t, int64(1000), dy.OrderMinimumNoSurcharge)
	require.Len(t, dy.DistanceRanges, 3)
	assert.Equal(t, int64(2), dy.DistanceRanges[1].B)
}

func TestLoadFixtures_MissingFile(t *testing.T) {
	_, err := LoadFixtures("testdata/nope.yml")
	assert.Error(t, err)
}

func TestParseFixtures_Invalid(t *testing.T) {
	_, err := ParseFixtures(strings.NewReader("venues: [not, a, map]"))
	assert.Error(t, err)

	_, err = ParseFixtures(strings.NewReader("venues:\n  v:\n    location: [24.9]\n"))
	assert.ErrorIs(t, err, ErrIncompleteResponse)
}

func TestFixtureSource_UnknownVenue(t *testing.T) {
	src, err := LoadFixtures("testdata/venues.yml")
	require.NoError(t, err)

	_, err = src.GetStatic(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestFixtureSource_Quote(t *testing.T) {
	src, err := LoadFixtures("testdata/venues.yml")
	require.NoError(t, err)

	out := quote.NewService(src).Quote(context.Background(), quote.Request{
		VenueSlug: "home-assignment-venue-helsinki",
		CartValue: "8,90",
		UserLat:   "60.17012143",
		UserLon:   "24.92813512",
	})

	require.Equal(t, quote.StatusSuccess, out.Status, "err: %v", out.Err)
	assert.Equal(t, quote.Result{
		CartValue:           890,
		SmallOrderSurcharge: 110,
		DeliveryFee:         190,
		TotalPrice:          1190,
		Distance:            0,
	}, out.Result)
}

func TestFixtureSource_UnknownVenueFailsQuote(t *testing.T) {
	src, err := LoadFixtures("testdata/venues.yml")
	require.NoError(t, err)

	out := quote.NewService(src).Quote(context.Background(), quote.Request{
		VenueSlug: "missing", CartValue: "10", UserLat: "60", UserLon: "24",
	})

	require.Equal(t, quote.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, ErrVenueNotFound)
	assert.Contains(t, out.Err.Error(), "failed to fetch venue")
}
