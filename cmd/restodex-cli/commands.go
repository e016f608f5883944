package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	restodex "github.com/kailas-cloud/restodex/pkg/sdk"
)

type app struct {
	client *restodex.Client
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := a.flags("list")
	var q restodex.PageQuery
	fs.IntVar(&q.Page, "page", restodex.DefaultPage, "page number")
	fs.IntVar(&q.Limit, "limit", restodex.DefaultLimit, "page size")
	fs.StringVar(&q.Search, "search", "", "name filter")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	snap := a.client.Listing().Load(ctx, q)
	if snap.State == restodex.ListingFailed {
		return snap.Err
	}
	printPage(a.out, snap)
	return nil
}

func (a *app) browse(ctx context.Context, args []string) error {
	fs := a.flags("browse")
	var q restodex.PageQuery
	fs.IntVar(&q.Limit, "limit", restodex.DefaultLimit, "page size")
	fs.StringVar(&q.Search, "search", "", "name filter")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	listing := a.client.Listing()
	snap := listing.Load(ctx, q)
	a.render(snap)

	sc := bufio.NewScanner(a.in)
	for {
		_, _ = io.WriteString(a.out, "[n]ext [p]rev [r]efresh [q]uit > ")
		if !sc.Scan() {
			_, _ = io.WriteString(a.out, "\n")
			return sc.Err()
		}

		var err error
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "n", "next":
			snap, err = listing.Next(ctx)
		case "p", "prev":
			snap, err = listing.Prev(ctx)
		case "r", "refresh":
			snap = listing.Refresh(ctx)
		case "q", "quit":
			return nil
		case "":
			continue
		default:
			_, _ = io.WriteString(a.out, "unknown input\n")
			continue
		}
		if errors.Is(err, restodex.ErrNavigationBlocked) {
			_, _ = io.WriteString(a.out, "no more pages in that direction\n")
			continue
		}
		a.render(snap)
	}
}

func (a *app) render(snap restodex.ListingSnapshot) {
	if snap.State == restodex.ListingFailed {
		_, _ = fmt.Fprintf(a.out, "failed to load restaurants: %v\n", snap.Err)
		return
	}
	printPage(a.out, snap)
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		_, _ = io.WriteString(a.errOut, "usage: restodex-cli show ID\n")
		return errUsage
	}

	snap := a.client.Detail().Load(ctx, args[0])
	switch snap.State {
	case restodex.DetailFound:
		printDetail(a.out, *snap.View)
		return nil
	case restodex.DetailNotFound:
		return fmt.Errorf("restaurant %q not found", args[0])
	default:
		return snap.Err
	}
}

func (a *app) near(ctx context.Context, args []string) error {
	fs := a.flags("near")
	lat := fs.String("lat", "", "latitude")
	lon := fs.String("lon", "", "longitude")
	radius := fs.String("radius", "", "radius in km (default 10)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	dest, err := restodex.SearchForm{
		Mode: restodex.ModeLocation, Latitude: *lat, Longitude: *lon, Radius: *radius,
	}.Submit()
	if err != nil {
		return err
	}
	return a.follow(ctx, dest)
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := a.flags("search")
	var form restodex.SearchForm
	mode := fs.String("mode", string(restodex.ModeName), "name, location or image")
	fs.StringVar(&form.Query, "q", "", "restaurant name (name mode)")
	fs.StringVar(&form.Latitude, "lat", "", "latitude (location mode)")
	fs.StringVar(&form.Longitude, "lon", "", "longitude (location mode)")
	fs.StringVar(&form.Radius, "radius", "", "radius in km (location mode)")
	fs.StringVar(&form.ImageFile, "image", "", "image file (image mode)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	form.Mode = restodex.SearchMode(*mode)

	dest, err := form.Submit()
	if err != nil {
		return err
	}
	return a.follow(ctx, dest)
}

// follow performs the request a search destination points at.
func (a *app) follow(ctx context.Context, dest restodex.Destination) error {
	_, _ = fmt.Fprintf(a.errOut, "-> %s\n", dest)

	switch dest.Path {
	case "/restaurants":
		q, err := restodex.PageQueryFromValues(dest.Query)
		if err != nil {
			return err
		}
		snap := a.client.Listing().Load(ctx, q)
		if snap.State == restodex.ListingFailed {
			return snap.Err
		}
		printPage(a.out, snap)
		return nil

	case "/locationR":
		q, err := restodex.LocationQueryFromValues(dest.Query)
		if err != nil {
			return err
		}
		items, err := a.client.NearbyRestaurants(ctx, q)
		if err != nil {
			return err
		}
		printNearby(a.out, items)
		return nil

	case "/searchimage":
		f, err := os.Open(dest.File)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer func() { _ = f.Close() }()
		items, err := a.client.SearchImage(ctx, dest.File, f)
		if errors.Is(err, restodex.ErrNotImplemented) {
			_, _ = io.WriteString(a.out, "image search is not available on this server yet\n")
			return nil
		}
		if err != nil {
			return err
		}
		printNearby(a.out, items)
		return nil

	default:
		return fmt.Errorf("unsupported destination %s", dest)
	}
}

func (a *app) health(ctx context.Context) error {
	h, err := a.client.Health(ctx)
	if h != nil {
		_, _ = fmt.Fprintf(a.out, "status: %s\n", h.Status)
		for name, state := range h.Checks {
			_, _ = fmt.Fprintf(a.out, "  %-10s %s\n", name, state)
		}
		if h.Restaurants != nil {
			_, _ = fmt.Fprintf(a.out, "restaurants: %d\n", *h.Restaurants)
		}
	}
	return err
}
