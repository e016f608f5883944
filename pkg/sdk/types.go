package restodex

// Restaurant is a catalog record as served by the API.
type Restaurant struct {
	ID                string    `json:"id"`
	Name              string    `json:"name,omitempty"`
	Cuisines          string    `json:"cuisines,omitempty"`
	Location          *Location `json:"location,omitempty"`
	AverageCostForTwo *float64  `json:"average_cost_for_two,omitempty"`
	UserRating        *Rating   `json:"user_rating,omitempty"`
	FeaturedImage     string    `json:"featured_image,omitempty"`
	MenuURL           string    `json:"menu_url,omitempty"`
	URL               string    `json:"url,omitempty"`
	PhoneNumbers      string    `json:"phone_numbers,omitempty"`
	Events            []Event   `json:"zomato_events,omitempty"`
}

// Location is the postal and geographic position of a restaurant.
type Location struct {
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	Locality  string   `json:"locality,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Rating is the aggregated user rating.
type Rating struct {
	AggregateRating string `json:"aggregate_rating,omitempty"`
	Votes           int    `json:"votes"`
}

// Event is a promotion shown on the detail page.
type Event struct {
	Title       string   `json:"title,omitempty"`
	DisplayDate string   `json:"display_date,omitempty"`
	DisplayTime string   `json:"display_time,omitempty"`
	Description string   `json:"description,omitempty"`
	ShareURL    string   `json:"share_url,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

// Page is one page of the catalog listing.
type Page struct {
	Page             int          `json:"page"`
	PageSize         int          `json:"pageSize"`
	TotalPages       int          `json:"totalPages"`
	TotalRestaurants int          `json:"totalRestaurants"`
	Restaurants      []Restaurant `json:"restaurants"`
}

// HealthStatus is the server health report.
type HealthStatus struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Restaurants *int              `json:"restaurants,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
