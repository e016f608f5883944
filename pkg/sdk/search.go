package restodex

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// SearchMode selects what the search form submits.
type SearchMode string

// Search modes.
const (
	ModeName     SearchMode = "name"
	ModeLocation SearchMode = "location"
	ModeImage    SearchMode = "image"
)

// SearchForm holds raw user input for the search entry screen.
type SearchForm struct {
	Mode      SearchMode
	Query     string
	Latitude  string
	Longitude string
	Radius    string
	ImageFile string
}

// Destination is where a valid submission navigates.
type Destination struct {
	Path  string
	Query url.Values
	File  string // image mode only
}

// String renders the navigable address, e.g. /restaurants?search=cafe.
func (d Destination) String() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}

// Submit validates the form for its mode. Invalid input returns a
// *ValidationError and no destination.
func (f SearchForm) Submit() (Destination, error) {
	switch f.Mode {
	case ModeName:
		q := strings.TrimSpace(f.Query)
		if q == "" {
			return Destination{}, &ValidationError{Field: "query", Message: "enter a restaurant name"}
		}
		return Destination{Path: "/restaurants", Query: url.Values{"search": {q}}}, nil

	case ModeLocation:
		lq, err := parseLocation(f.Latitude, f.Longitude, f.Radius)
		if err != nil {
			return Destination{}, err
		}
		return Destination{Path: "/locationR", Query: lq.Values()}, nil

	case ModeImage:
		if strings.TrimSpace(f.ImageFile) == "" {
			return Destination{}, &ValidationError{Field: "image", Message: "select an image file"}
		}
		return Destination{Path: "/searchimage", File: f.ImageFile}, nil

	default:
		return Destination{}, &ValidationError{Field: "mode", Message: "unknown search mode " + strconv.Quote(string(f.Mode))}
	}
}

func parseLocation(latRaw, lonRaw, radiusRaw string) (LocationQuery, error) {
	lat, err := parseCoord(latRaw, "latitude", 90)
	if err != nil {
		return LocationQuery{}, err
	}
	lon, err := parseCoord(lonRaw, "longitude", 180)
	if err != nil {
		return LocationQuery{}, err
	}

	radius := DefaultRadiusKm
	if r := strings.TrimSpace(radiusRaw); r != "" {
		radius, err = strconv.ParseFloat(r, 64)
		if err != nil || math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
			return LocationQuery{}, &ValidationError{Field: "radius", Message: "must be a positive number of kilometers"}
		}
	}
	return LocationQuery{Latitude: lat, Longitude: lon, RadiusKm: radius}, nil
}

func parseCoord(raw, field string, limit float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: field, Message: "is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, &ValidationError{Field: field, Message: "must be a number"}
	}
	if v < -limit || v > limit {
		return 0, &ValidationError{
			Field:   field,
			Message: "must be between " + formatFloat(-limit) + " and " + formatFloat(limit),
		}
	}
	return v, nil
}
