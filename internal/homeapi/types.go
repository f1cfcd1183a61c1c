package homeapi

import "backend-woltapp-completion/internal/pricing"

// staticResponse holds only the fields needed from the static endpoint.
type staticResponse struct {
	VenueRaw *struct {
		Location *struct {
			// GeoJSON order: [lon, lat]. Pointers tell null apart from 0.
			Coordinates []*float64 `json:"coordinates"`
		} `json:"location"`
	} `json:"venue_raw"`
}

// dynamicResponse holds only the fields needed from the dynamic endpoint.
type dynamicResponse struct {
	VenueRaw *struct {
		DeliverySpecs *struct {
			OrderMinimumNoSurcharge *int64 `json:"order_minimum_no_surcharge"`
			DeliveryPricing         *struct {
				BasePrice      *int64                  `json:"base_price"`
				DistanceRanges []pricing.DistanceRange `json:"distance_ranges"`
			} `json:"delivery_pricing"`
		} `json:"delivery_specs"`
	} `json:"venue_raw"`
}

type errorBody struct {
	Message string `json:"message"`
}
