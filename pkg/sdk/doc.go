// Package restodex is a Go client for the restodex restaurant catalog API.
//
// The Client issues plain HTTP requests. Listing, Detail and SearchForm model
// the front-end flows on top of it: a paginated listing with a scoped page
// cache, a detail lookup keyed by id, and a search entry form that validates
// input and produces a navigable destination.
//
//	client, _ := restodex.New("http://localhost:8080")
//	listing := client.Listing()
//	snap := listing.Load(ctx, restodex.PageQuery{Page: 1, Search: "cafe"})
//	for _, card := range snap.Cards {
//	    fmt.Println(card.Name, card.Rating)
//	}
//	snap, _ = listing.Next(ctx)
//
// Loads are "last request wins": a newer Load cancels the one in flight and
// the superseded result never reaches the snapshot.
package restodex
