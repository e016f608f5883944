package dataset

import (
	"encoding/json"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

type rawPage struct {
	Restaurants []json.RawMessage `json:"restaurants"`
}

type rawRestaurant struct {
	ID   flexString `json:"id"`
	Meta *struct {
		ResID flexString `json:"res_id"`
	} `json:"R"`
	Name              string       `json:"name"`
	Cuisines          string       `json:"cuisines"`
	Location          *rawLocation `json:"location"`
	AverageCostForTwo flexFloat    `json:"average_cost_for_two"`
	UserRating        *rawRating   `json:"user_rating"`
	FeaturedImage     string       `json:"featured_image"`
	MenuURL           string       `json:"menu_url"`
	URL               string       `json:"url"`
	PhoneNumbers      flexString   `json:"phone_numbers"`
	Events            []rawEvent   `json:"zomato_events"`
}

type rawLocation struct {
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Locality  string    `json:"locality"`
	Latitude  flexFloat `json:"latitude"`
	Longitude flexFloat `json:"longitude"`
}

type rawRating struct {
	AggregateRating flexString `json:"aggregate_rating"`
	Votes           flexInt    `json:"votes"`
}

// rawEvent is either {"event": {...}} or the bare event object.
type rawEvent struct {
	eventBody
}

type eventBody struct {
	Title       string     `json:"title"`
	DisplayDate string     `json:"display_date"`
	DisplayTime string     `json:"display_time"`
	Description string     `json:"description"`
	ShareURL    string     `json:"share_url"`
	Photos      []rawPhoto `json:"photos"`
}

func (e *rawEvent) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Event *eventBody `json:"event"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Event != nil {
		e.eventBody = *wrapped.Event
		return nil
	}
	return json.Unmarshal(data, &e.eventBody)
}

// rawPhoto is a URL string, {"url": ...} or {"photo": {"url": ...}}.
type rawPhoto string

func (p *rawPhoto) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = rawPhoto(s)
		return nil
	}
	var obj struct {
		URL   string `json:"url"`
		Photo *struct {
			URL string `json:"url"`
		} `json:"photo"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Photo != nil {
		*p = rawPhoto(obj.Photo.URL)
	} else {
		*p = rawPhoto(obj.URL)
	}
	return nil
}

func (r *rawRestaurant) normalize() restaurant.Restaurant {
	id := strings.TrimSpace(string(r.ID))
	if id == "" && r.Meta != nil {
		id = strings.TrimSpace(string(r.Meta.ResID))
	}

	out := restaurant.Restaurant{
		ID:                id,
		Name:              strings.TrimSpace(r.Name),
		Cuisines:          r.Cuisines,
		AverageCostForTwo: r.AverageCostForTwo.ptr(),
		FeaturedImage:     r.FeaturedImage,
		MenuURL:           r.MenuURL,
		URL:               r.URL,
		PhoneNumbers:      string(r.PhoneNumbers),
	}

	if l := r.Location; l != nil {
		out.Location = &restaurant.Location{
			Address:  l.Address,
			City:     l.City,
			Locality: l.Locality,
		}
		// The export writes "0.0000000" for both coordinates of unmapped places.
		if !(l.Latitude.set && l.Longitude.set && l.Latitude.v == 0 && l.Longitude.v == 0) {
			out.Location.Latitude = l.Latitude.ptr()
			out.Location.Longitude = l.Longitude.ptr()
		}
	}

	if ur := r.UserRating; ur != nil {
		out.UserRating = &restaurant.Rating{
			AggregateRating: string(ur.AggregateRating),
			Votes:           int(ur.Votes),
		}
	}

	for _, e := range r.Events {
		ev := restaurant.Event{
			Title:       e.Title,
			DisplayDate: e.DisplayDate,
			DisplayTime: e.DisplayTime,
			Description: e.Description,
			ShareURL:    e.ShareURL,
		}
		for _, p := range e.Photos {
			if p != "" {
				ev.Photos = append(ev.Photos, string(p))
			}
		}
		out.Events = append(out.Events, ev)
	}
	return out
}

// rawIdentity recovers the id of a record whose full decode failed.
type rawIdentity struct {
	ID   flexString `json:"id"`
	Meta *struct {
		ResID flexString `json:"res_id"`
	} `json:"R"`
}

func identify(data []byte) string {
	var ri rawIdentity
	_ = json.Unmarshal(data, &ri)
	if id := strings.TrimSpace(string(ri.ID)); id != "" {
		return id
	}
	if ri.Meta != nil {
		return strings.TrimSpace(string(ri.Meta.ResID))
	}
	return ""
}
