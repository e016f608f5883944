package restodex

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Placeholders shown for absent fields.
const (
	PlaceholderName     = "Unknown Restaurant"
	PlaceholderCuisines = "Cuisines not available"
	PlaceholderRating   = "N/A"
	PlaceholderAddress  = "Address not available"
	PlaceholderLocation = "Location not available"
	PlaceholderCost     = "N/A"
	PlaceholderPhone    = "Not available"
	PlaceholderImage    = "https://via.placeholder.com/300x200?text=No+Image"
)

const cardAddressMax = 50

// CardView is the listing card for one restaurant.
type CardView struct {
	ID         string
	Name       string
	Cuisines   string
	Image      string
	Rating     string
	Votes      int
	Address    string
	DetailPath string
}

// NewCardView renders r with placeholders for missing fields. Addresses
// longer than 50 characters are cut and suffixed with "...".
func NewCardView(r Restaurant) CardView {
	rating, votes := ratingOf(r.UserRating)

	address := PlaceholderAddress
	if r.Location != nil && strings.TrimSpace(r.Location.Address) != "" {
		address = truncate(r.Location.Address, cardAddressMax)
	}

	return CardView{
		ID:         r.ID,
		Name:       orDefault(r.Name, PlaceholderName),
		Cuisines:   orDefault(r.Cuisines, PlaceholderCuisines),
		Image:      orDefault(r.FeaturedImage, PlaceholderImage),
		Rating:     rating,
		Votes:      votes,
		Address:    address,
		DetailPath: "/restaurants/" + r.ID,
	}
}

// DetailView is the full page for one restaurant.
type DetailView struct {
	ID       string
	Name     string
	Image    string
	Rating   string
	Votes    int
	Location string
	Cuisines string
	Address  string
	Cost     string
	Phone    string
	URL      string
	MenuURL  string
	Events   []Event
}

// NewDetailView renders r with placeholders for missing fields.
func NewDetailView(r Restaurant) DetailView {
	rating, votes := ratingOf(r.UserRating)

	location, address := PlaceholderLocation, PlaceholderAddress
	if l := r.Location; l != nil {
		if s := joinNonEmpty(", ", l.Locality, l.City); s != "" {
			location = s
		}
		address = orDefault(l.Address, PlaceholderAddress)
	}

	cost := PlaceholderCost
	if r.AverageCostForTwo != nil {
		cost = strconv.FormatFloat(*r.AverageCostForTwo, 'f', -1, 64)
	}

	return DetailView{
		ID:       r.ID,
		Name:     orDefault(r.Name, PlaceholderName),
		Image:    orDefault(r.FeaturedImage, PlaceholderImage),
		Rating:   rating,
		Votes:    votes,
		Location: location,
		Cuisines: orDefault(r.Cuisines, PlaceholderCuisines),
		Address:  address,
		Cost:     cost,
		Phone:    orDefault(r.PhoneNumbers, PlaceholderPhone),
		URL:      r.URL,
		MenuURL:  r.MenuURL,
		Events:   r.Events,
	}
}

func ratingOf(r *Rating) (string, int) {
	if r == nil {
		return PlaceholderRating, 0
	}
	return orDefault(r.AggregateRating, PlaceholderRating), r.Votes
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// matchesName is the client-side name filter pass, the same predicate the
// server applies.
func matchesName(r Restaurant, search string) bool {
	return restaurant.NameContains(r.Name, search)
}
