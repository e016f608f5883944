// Package listing holds the paginated catalog query and its result page.
package listing

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// Pagination defaults and limits.
const (
	DefaultPage     = 1
	DefaultLimit    = 8
	MaxLimit        = 100
	MaxSearchLength = 256
)

// Query is a validated page request.
type Query struct {
	page   int
	limit  int
	search string
}

// New validates pagination input. page and limit must be positive; limit may
// not exceed maxLimit (MaxLimit when maxLimit <= 0). search is trimmed.
func New(page, limit int, search string, maxLimit int) (Query, error) {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if page < 1 {
		return Query{}, domain.NewParameterError("page", "must be a positive integer")
	}
	if limit < 1 {
		return Query{}, domain.NewParameterError("limit", "must be a positive integer")
	}
	if limit > maxLimit {
		return Query{}, domain.NewParameterError("limit", "must not exceed "+itoa(maxLimit))
	}
	if page-1 > math.MaxInt/limit {
		return Query{}, domain.NewParameterError("page", "is out of range")
	}

	search = strings.TrimSpace(search)
	if utf8.RuneCountInString(search) > MaxSearchLength {
		return Query{}, domain.NewParameterError("search", "must not exceed "+itoa(MaxSearchLength)+" characters")
	}

	return Query{page: page, limit: limit, search: search}, nil
}

// Page returns the 1-based page number.
func (q Query) Page() int { return q.page }

// Limit returns the page size.
func (q Query) Limit() int { return q.limit }

// Search returns the trimmed name filter, empty when unfiltered.
func (q Query) Search() string { return q.search }

// Offset returns the number of records skipped before this page.
func (q Query) Offset() int { return (q.page - 1) * q.limit }
