package main

import (
	"fmt"
	"io"

	restodex "github.com/kailas-cloud/restodex/pkg/sdk"
)

func printPage(w io.Writer, snap restodex.ListingSnapshot) {
	p := snap.Page
	if len(snap.Cards) == 0 {
		_, _ = io.WriteString(w, "No restaurants found.\n")
	}
	for _, c := range snap.Cards {
		printCard(w, c)
	}
	_, _ = fmt.Fprintf(w, "page %d of %d (%d restaurants)\n", snap.Query.Page, p.TotalPages, p.TotalRestaurants)
}

func printCard(w io.Writer, c restodex.CardView) {
	_, _ = fmt.Fprintf(w, "%-6s %s\n", c.ID, c.Name)
	_, _ = fmt.Fprintf(w, "       %s\n", c.Cuisines)
	_, _ = fmt.Fprintf(w, "       rating %s (%d votes)  %s\n", c.Rating, c.Votes, c.Address)
}

func printNearby(w io.Writer, items []restodex.Restaurant) {
	if len(items) == 0 {
		_, _ = io.WriteString(w, "No restaurants found.\n")
		return
	}
	for _, r := range items {
		printCard(w, restodex.NewCardView(r))
	}
}

func printDetail(w io.Writer, v restodex.DetailView) {
	_, _ = fmt.Fprintf(w, "%s\n", v.Name)
	_, _ = fmt.Fprintf(w, "  rating:        %s (%d votes)\n", v.Rating, v.Votes)
	_, _ = fmt.Fprintf(w, "  location:      %s\n", v.Location)
	_, _ = fmt.Fprintf(w, "  address:       %s\n", v.Address)
	_, _ = fmt.Fprintf(w, "  cuisines:      %s\n", v.Cuisines)
	_, _ = fmt.Fprintf(w, "  cost for two:  %s\n", v.Cost)
	_, _ = fmt.Fprintf(w, "  phone:         %s\n", v.Phone)
	if v.URL != "" {
		_, _ = fmt.Fprintf(w, "  url:           %s\n", v.URL)
	}
	if v.MenuURL != "" {
		_, _ = fmt.Fprintf(w, "  menu:          %s\n", v.MenuURL)
	}
	for _, e := range v.Events {
		_, _ = fmt.Fprintf(w, "  event: %s  %s %s\n", e.Title, e.DisplayDate, e.DisplayTime)
	}
}
