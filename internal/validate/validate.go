// Package validate checks user supplied quote fields before any venue data is
// fetched or any price is computed.
package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"backend-woltapp-completion/internal/geo"
	"backend-woltapp-completion/internal/money"
)

// MaxFractionDigits caps the precision accepted for a coordinate component.
const MaxFractionDigits = 13

var (
	ErrEmpty          = errors.New("value is required")
	ErrCartFormat     = errors.New("cart value must be a whole amount or have exactly two decimals")
	ErrTooPrecise     = fmt.Errorf("coordinates cannot have more than %d decimal places", MaxFractionDigits)
	ErrLatitudeRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange = errors.New("longitude must be between -180 and 180")
)

var cartValuePattern = regexp.MustCompile(`^\d+([.,]\d{2})?$`)

type Field string

const (
	FieldVenueSlug Field = "venue_slug"
	FieldCartValue Field = "cart_value"
	FieldUserLat   Field = "user_lat"
	FieldUserLon   Field = "user_lon"
)

type Reason string

const (
	ReasonRequired      Reason = "required"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonTooPrecise    Reason = "too_precise"
	ReasonOutOfRange    Reason = "out_of_range"
)

// Violation tags one invalid field with the rule it broke.
type Violation struct {
	Field  Field  `json:"field"`
	Reason Reason `json:"reason"`
}

// Violations is the full set of invalid fields found in one validation pass.
type Violations []Violation

func (v Violations) Has(f Field) bool {
	for _, x := range v {
		if x.Field == f {
			return true
		}
	}
	return false
}

func (v Violations) Fields() []Field {
	out := make([]Field, 0, len(v))
	for _, x := range v {
		out = append(out, x.Field)
	}
	return out
}

// ParseError reports a coordinate string that is present but is not a finite
// number at all.
type ParseError struct {
	Field Field
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid number", e.Field, e.Value)
}

// Input holds the raw user fields of a quote request.
type Input struct {
	VenueSlug string
	CartValue string
	UserLat   string
	UserLon   string
}

// Validated is the typed form of an Input that passed every check.
type Validated struct {
	VenueSlug string
	CartValue int64
	User      geo.Coordinate
}

func VenueSlug(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmpty
	}
	return nil
}

func CartValue(s string) error {
	if !cartValuePattern.MatchString(s) {
		return ErrCartFormat
	}
	return nil
}

func Present(s string) error {
	if s == "" {
		return ErrEmpty
	}
	return nil
}

// Coordinates checks precision of both components before their ranges.
func Coordinates(lat, lon float64) error {
	if FractionDigits(lat) > MaxFractionDigits || FractionDigits(lon) > MaxFractionDigits {
		return ErrTooPrecise
	}
	if lat < -90 || lat > 90 {
		return ErrLatitudeRange
	}
	if lon < -180 || lon > 180 {
		return ErrLongitudeRange
	}
	return nil
}

// FractionDigits counts the digits after the decimal point in the shortest
// representation that round-trips to v.
func FractionDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// typedFractionDigits counts the fraction digits as written in raw, so digits
// that float64 cannot hold still count. Exponent and hex forms fall back to
// the parsed value.
func typedFractionDigits(raw string, v float64) int {
	s := strings.TrimSpace(raw)
	if strings.ContainsAny(s, "eEpPxX") {
		return FractionDigits(v)
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// Fields validates every field and reports all violations at once. The
// returned error is non-nil only when there are no violations but a
// coordinate could not be parsed as a number.
func Fields(in Input) (Validated, Violations, error) {
	var (
		out        Validated
		violations Violations
		parseErrs  []error
	)

	if err := VenueSlug(in.VenueSlug); err != nil {
		violations = append(violations, Violation{FieldVenueSlug, ReasonRequired})
	} else {
		out.VenueSlug = strings.TrimSpace(in.VenueSlug)
	}

	switch {
	case Present(in.CartValue) != nil:
		violations = append(violations, Violation{FieldCartValue, ReasonRequired})
	case CartValue(in.CartValue) != nil:
		violations = append(violations, Violation{FieldCartValue, ReasonInvalidFormat})
	default:
		cents, err := money.ParseCents(in.CartValue)
		if err != nil {
			violations = append(violations, Violation{FieldCartValue, ReasonInvalidFormat})
		}
		out.CartValue = cents
	}

	lat, v, err := coordinate(FieldUserLat, in.UserLat, -90, 90)
	if v != nil {
		violations = append(violations, *v)
	}
	if err != nil {
		parseErrs = append(parseErrs, err)
	}
	lon, v, err := coordinate(FieldUserLon, in.UserLon, -180, 180)
	if v != nil {
		violations = append(violations, *v)
	}
	if err != nil {
		parseErrs = append(parseErrs, err)
	}

	if len(violations) > 0 {
		return Validated{}, violations, nil
	}
	if len(parseErrs) > 0 {
		return Validated{}, nil, errors.Join(parseErrs...)
	}
	out.User = geo.Coordinate{Lat: lat, Lon: lon}
	return out, nil, nil
}

func coordinate(field Field, raw string, lo, hi float64) (float64, *Violation, error) {
	if err := Present(raw); err != nil {
		return 0, &Violation{field, ReasonRequired}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil, &ParseError{Field: field, Value: raw}
	}
	if typedFractionDigits(raw, v) > MaxFractionDigits {
		return 0, &Violation{field, ReasonTooPrecise}, nil
	}
	if v < lo || v > hi {
		return 0, &Violation{field, ReasonOutOfRange}, nil
	}
	return v, nil, nil
}
