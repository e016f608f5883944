package restaurant

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestNameContains(t *testing.T) {
	tests := []struct {
		name, query string
		want        bool
	}{
		{"Cafe Mocha", "cafe", true},
		{"cafe solo", "cafe", true},
		{"Cafe Mocha", "xyz", false},
		{"cafe solo", "xyz", false},
		{"The Black Pearl", "PEARL", true},
		{"The Black Pearl", "  black ", true},
		{"Anything", "", true},
		{"", "cafe", false},
	}
	for _, tc := range tests {
		if got := NameContains(tc.name, tc.query); got != tc.want {
			t.Errorf("NameContains(%q, %q) = %v, want %v", tc.name, tc.query, got, tc.want)
		}
	}
}

func TestMatchesName(t *testing.T) {
	r := Restaurant{ID: "1", Name: "Truffles"}
	if !r.MatchesName("truff") {
		t.Error("expected match")
	}
	if r.MatchesName("pizza") {
		t.Error("expected no match")
	}
}

func TestCoordinates(t *testing.T) {
	r := Restaurant{ID: "1"}
	if _, _, ok := r.Coordinates(); ok {
		t.Error("no location: expected ok=false")
	}

	r.Location = &Location{Latitude: f64(12.97)}
	if _, _, ok := r.Coordinates(); ok {
		t.Error("missing longitude: expected ok=false")
	}

	r.Location.Longitude = f64(77.59)
	lat, lon, ok := r.Coordinates()
	if !ok || lat != 12.97 || lon != 77.59 {
		t.Errorf("got (%f, %f, %v)", lat, lon, ok)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Restaurant
		wantErr bool
	}{
		{"ok minimal", Restaurant{ID: "1"}, false},
		{"ok with coords", Restaurant{ID: "1", Location: &Location{Latitude: f64(1), Longitude: f64(2)}}, false},
		{"ok address only", Restaurant{ID: "1", Location: &Location{Address: "MG Road"}}, false},
		{"missing id", Restaurant{Name: "x"}, true},
		{"blank id", Restaurant{ID: "  "}, true},
		{"half coords", Restaurant{ID: "1", Location: &Location{Latitude: f64(1)}}, true},
		{"out of range", Restaurant{ID: "1", Location: &Location{Latitude: f64(91), Longitude: f64(0)}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidRecord) {
					t.Fatalf("expected ErrInvalidRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
