package restodex

import (
	"net/url"
	"strconv"
	"strings"
)

// Query defaults, matching the server.
const (
	DefaultPage     = 1
	DefaultLimit    = 8
	DefaultRadiusKm = 10.0
)

// PageQuery addresses one listing page.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

// Normalize fills defaults and trims the search text.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Values encodes the query as address parameters. search is omitted when empty.
func (q PageQuery) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// Key is the canonical cache key: page=..&limit=..&search=..
func (q PageQuery) Key() string {
	q = q.Normalize()
	return "page=" + strconv.Itoa(q.Page) +
		"&limit=" + strconv.Itoa(q.Limit) +
		"&search=" + url.QueryEscape(q.Search)
}

// PageQueryFromValues rebuilds a PageQuery from a navigable address.
// Absent or empty parameters take defaults; malformed ones are rejected.
func PageQueryFromValues(v url.Values) (PageQuery, error) {
	var q PageQuery
	var err error
	if q.Page, err = positiveInt(v, "page", DefaultPage); err != nil {
		return PageQuery{}, err
	}
	if q.Limit, err = positiveInt(v, "limit", DefaultLimit); err != nil {
		return PageQuery{}, err
	}
	q.Search = strings.TrimSpace(v.Get("search"))
	return q, nil
}

// LocationQuery addresses a proximity search.
type LocationQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64 // zero selects DefaultRadiusKm
}

// Values encodes the query as address parameters.
func (q LocationQuery) Values() url.Values {
	r := q.RadiusKm
	if r <= 0 {
		r = DefaultRadiusKm
	}
	v := url.Values{}
	v.Set("latitude", formatFloat(q.Latitude))
	v.Set("longitude", formatFloat(q.Longitude))
	v.Set("radius", formatFloat(r))
	return v
}

// LocationQueryFromValues rebuilds a LocationQuery from a navigable address,
// applying the same checks as the search form.
func LocationQueryFromValues(v url.Values) (LocationQuery, error) {
	return parseLocation(v.Get("latitude"), v.Get("longitude"), v.Get("radius"))
}

func positiveInt(v url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(v.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return n, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
