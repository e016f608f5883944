package listing

import (
	"strconv"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Page is one page of catalog results with its pagination metadata.
type Page struct {
	number      int
	size        int
	total       int
	restaurants []restaurant.Restaurant
}

// NewPage assembles a result page. The page number is echoed from the query
// and never clamped to the last page.
func NewPage(q Query, total int, items []restaurant.Restaurant) Page {
	if items == nil {
		items = []restaurant.Restaurant{}
	}
	if len(items) > q.limit {
		items = items[:q.limit]
	}
	return Page{number: q.page, size: q.limit, total: total, restaurants: items}
}

// Number returns the requested page number.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// Total returns the number of matching restaurants across all pages.
func (p Page) Total() int { return p.total }

// TotalPages returns ceil(Total / Size).
func (p Page) TotalPages() int { return TotalPages(p.total, p.size) }

// Restaurants returns the records on this page; never nil.
func (p Page) Restaurants() []restaurant.Restaurant { return p.restaurants }

// TotalPages returns ceil(total / size), 0 for an empty catalog.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func itoa(n int) string { return strconv.Itoa(n) }
