// Package restaurant defines the catalog record served by the retrieval API.
package restaurant

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
)

// Restaurant is a single catalog entry. Only ID is required.
type Restaurant struct {
	ID                string    `json:"id" bson:"id"`
	Name              string    `json:"name,omitempty" bson:"name,omitempty"`
	Cuisines          string    `json:"cuisines,omitempty" bson:"cuisines,omitempty"`
	Location          *Location `json:"location,omitempty" bson:"location,omitempty"`
	AverageCostForTwo *float64  `json:"average_cost_for_two,omitempty" bson:"average_cost_for_two,omitempty"`
	UserRating        *Rating   `json:"user_rating,omitempty" bson:"user_rating,omitempty"`
	FeaturedImage     string    `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	MenuURL           string    `json:"menu_url,omitempty" bson:"menu_url,omitempty"`
	URL               string    `json:"url,omitempty" bson:"url,omitempty"`
	PhoneNumbers      string    `json:"phone_numbers,omitempty" bson:"phone_numbers,omitempty"`
	Events            []Event   `json:"zomato_events,omitempty" bson:"zomato_events,omitempty"`
}

// Location is the postal and geographic position of a restaurant.
type Location struct {
	Address   string   `json:"address,omitempty" bson:"address,omitempty"`
	City      string   `json:"city,omitempty" bson:"city,omitempty"`
	Locality  string   `json:"locality,omitempty" bson:"locality,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// Rating is the aggregated user rating. AggregateRating is kept as text ("4.3").
type Rating struct {
	AggregateRating string `json:"aggregate_rating,omitempty" bson:"aggregate_rating,omitempty"`
	Votes           int    `json:"votes" bson:"votes"`
}

// Event is a promotion or happening shown on the detail page.
type Event struct {
	Title       string   `json:"title,omitempty" bson:"title,omitempty"`
	DisplayDate string   `json:"display_date,omitempty" bson:"display_date,omitempty"`
	DisplayTime string   `json:"display_time,omitempty" bson:"display_time,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	ShareURL    string   `json:"share_url,omitempty" bson:"share_url,omitempty"`
	Photos      []string `json:"photos,omitempty" bson:"photos,omitempty"`
}

// Coordinates returns the restaurant position; ok is false when either
// coordinate is missing.
func (r *Restaurant) Coordinates() (lat, lon float64, ok bool) {
	if r.Location == nil || r.Location.Latitude == nil || r.Location.Longitude == nil {
		return 0, 0, false
	}
	return *r.Location.Latitude, *r.Location.Longitude, true
}

// MatchesName reports whether the restaurant name contains query, ignoring case.
func (r *Restaurant) MatchesName(query string) bool {
	return NameContains(r.Name, query)
}

// Validate checks the invariants required for storage.
func (r *Restaurant) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidRecord)
	}
	if r.Location == nil {
		return nil
	}
	hasLat, hasLon := r.Location.Latitude != nil, r.Location.Longitude != nil
	if hasLat != hasLon {
		return fmt.Errorf("%w: %s: latitude and longitude must be set together", domain.ErrInvalidRecord, r.ID)
	}
	if hasLat && !geo.ValidateCoordinates(*r.Location.Latitude, *r.Location.Longitude) {
		return fmt.Errorf("%w: %s: coordinates out of range", domain.ErrInvalidRecord, r.ID)
	}
	return nil
}

// NameContains is the catalog text-search predicate: a case-insensitive
// substring match. A blank query matches every name.
func NameContains(name, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(q))
}
