package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain"
	dombatch "github.com/kailas-cloud/restodex/internal/domain/batch"
)

const zomatoPages = `[
  {
    "results_found": 2,
    "restaurants": [
      {"restaurant": {
        "R": {"res_id": 16774318},
        "id": "16774318",
        "name": " Otto Enoteca & Pizzeria ",
        "cuisines": "Cafe",
        "average_cost_for_two": 25,
        "location": {"address": "1 Fifth Avenue, New York", "city": "New York",
                     "locality": "Greenwich Village", "latitude": "40.732013", "longitude": "-73.996155"},
        "user_rating": {"aggregate_rating": "3.7", "votes": "365"},
        "featured_image": "https://img.example/otto.jpg",
        "zomato_events": [
          {"event": {"title": "Happy Hour", "share_url": "https://z.example/e/1",
                     "photos": [{"photo": {"url": "https://img.example/e1.jpg"}}]}}
        ]
      }},
      {"restaurant": {
        "R": {"res_id": 17066603},
        "name": "The Month",
        "location": {"latitude": "0.0000000000", "longitude": "0.0000000000"},
        "user_rating": {"aggregate_rating": 4.1, "votes": 12}
      }}
    ]
  },
  {"results_found": 0, "restaurants": []}
]`

func TestRead_PageDocuments(t *testing.T) {
	ds, err := Read(strings.NewReader(zomatoPages))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := ds.Records
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}

	otto := recs[0]
	if otto.ID != "16774318" || otto.Name != "Otto Enoteca & Pizzeria" {
		t.Errorf("otto = %q %q", otto.ID, otto.Name)
	}
	lat, lon, ok := otto.Coordinates()
	if !ok || lat != 40.732013 || lon != -73.996155 {
		t.Errorf("coords = %v,%v ok=%v", lat, lon, ok)
	}
	if otto.AverageCostForTwo == nil || *otto.AverageCostForTwo != 25 {
		t.Errorf("cost = %v", otto.AverageCostForTwo)
	}
	if otto.UserRating == nil || otto.UserRating.AggregateRating != "3.7" || otto.UserRating.Votes != 365 {
		t.Errorf("rating = %+v", otto.UserRating)
	}
	if len(otto.Events) != 1 || otto.Events[0].Title != "Happy Hour" {
		t.Fatalf("events = %+v", otto.Events)
	}
	if got := otto.Events[0].Photos; len(got) != 1 || got[0] != "https://img.example/e1.jpg" {
		t.Errorf("photos = %v", got)
	}

	month := recs[1]
	if month.ID != "17066603" {
		t.Errorf("id fallback = %q, want R.res_id", month.ID)
	}
	if month.UserRating.AggregateRating != "4.1" || month.UserRating.Votes != 12 {
		t.Errorf("rating = %+v", month.UserRating)
	}
	if month.AverageCostForTwo != nil {
		t.Errorf("cost = %v, want nil", month.AverageCostForTwo)
	}
	if _, _, ok := month.Coordinates(); ok {
		t.Error("0,0 placeholder coordinates should read as absent")
	}
	if month.Location == nil {
		t.Error("location should survive without coordinates")
	}
	if len(ds.Rejected) != 0 {
		t.Errorf("rejected = %+v", ds.Rejected)
	}
}

func TestRead_WrappedAndBareRecords(t *testing.T) {
	in := `[
	  {"restaurant": {"id": 1, "name": "Wrapped"}},
	  {"id": "2", "name": "Bare", "phone_numbers": "+1 555 0100",
	   "zomato_events": [{"title": "Bare event", "photos": ["https://img.example/p.jpg", {"url": "https://img.example/q.jpg"}]}]},
	  {}
	]`
	ds, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := ds.Records
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID != "1" || recs[0].Name != "Wrapped" {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if recs[1].PhoneNumbers != "+1 555 0100" {
		t.Errorf("phone = %q", recs[1].PhoneNumbers)
	}
	if ev := recs[1].Events; len(ev) != 1 || len(ev[0].Photos) != 2 {
		t.Errorf("events = %+v", ev)
	}
}

func TestRead_SinglePageDocument(t *testing.T) {
	in := `{"restaurants": [{"restaurant": {"id": "9", "name": "Solo"}}, {"restaurant": null}]}`
	ds, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := ds.Records
	if len(recs) != 1 || recs[0].ID != "9" {
		t.Errorf("recs = %+v", recs)
	}
}

func TestRead_MissingCoordinatesStayNil(t *testing.T) {
	in := `[{"id": "5", "location": {"address": "Somewhere", "latitude": "", "longitude": null}}]`
	ds, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := ds.Records
	loc := recs[0].Location
	if loc == nil || loc.Latitude != nil || loc.Longitude != nil {
		t.Errorf("location = %+v", loc)
	}
	if _, _, ok := recs[0].Coordinates(); ok {
		t.Error("expected no coordinates")
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", "   "},
		{"scalar", `"restaurants"`},
		{"broken json", `[{"id": `},
		{"array of scalars", `[1, 2]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.in)); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := Read(strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRead_MalformedRecordIsRejected(t *testing.T) {
	in := `[
	  {"restaurants": [
	    {"restaurant": {"id": "1", "name": "Good", "location": {"latitude": "12.97", "longitude": "77.59"}}},
	    {"restaurant": {"id": "2", "name": "Bad", "location": {"latitude": "n/a", "longitude": "77.59"}}},
	    {"restaurant": {"id": "3", "name": "Also good"}}
	  ]},
	  {"R": {"res_id": 4}, "name": "Bad votes", "user_rating": {"votes": "many"}},
	  {"id": "5", "name": "Bare good"}
	]`
	ds, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []string
	for _, r := range ds.Records {
		ids = append(ids, r.ID)
	}
	if got := strings.Join(ids, ","); got != "1,3,5" {
		t.Errorf("records = %s, want 1,3,5", got)
	}

	if len(ds.Rejected) != 2 {
		t.Fatalf("rejected = %d, want 2", len(ds.Rejected))
	}
	for i, want := range []string{"2", "4"} {
		rej := ds.Rejected[i]
		if rej.ID() != want {
			t.Errorf("rejected[%d] id = %q, want %q", i, rej.ID(), want)
		}
		if rej.Status() != dombatch.StatusSkipped {
			t.Errorf("rejected[%d] status = %s", i, rej.Status())
		}
		if !errors.Is(rej.Err(), domain.ErrInvalidRecord) {
			t.Errorf("rejected[%d] err = %v, want ErrInvalidRecord", i, rej.Err())
		}
	}
	if msg := ds.Rejected[0].Err().Error(); !strings.Contains(msg, "record 2") || !strings.Contains(msg, "n/a") {
		t.Errorf("reject reason = %q", msg)
	}
}

func TestRead_OnlyOneZeroCoordinateIsKept(t *testing.T) {
	ds, err := Read(strings.NewReader(`[{"id": "7", "location": {"latitude": "0", "longitude": "32.5"}}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lat, lon, ok := ds.Records[0].Coordinates()
	if !ok || lat != 0 || lon != 32.5 {
		t.Errorf("coords = %v,%v ok=%v", lat, lon, ok)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.json")
	if err := os.WriteFile(path, []byte(zomatoPages), 0o600); err != nil {
		t.Fatal(err)
	}
	ds, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Errorf("len = %d, want 2", len(ds.Records))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
