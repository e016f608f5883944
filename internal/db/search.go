package db

// ConditionKind selects how a Condition is rendered into a query.
type ConditionKind int

const (
	// CondContains matches TAG values containing a substring.
	CondContains ConditionKind = iota
	// CondRange matches NUMERIC values within [Min, Max].
	CondRange
	// CondTagEquals matches documents carrying an exact TAG value.
	CondTagEquals
)

// Condition is a single search predicate; conditions in a query are ANDed.
type Condition struct {
	Field string
	Kind  ConditionKind
	Value string
	Min   float64
	Max   float64
}

// Contains builds a substring predicate over a TAG field.
func Contains(field, value string) Condition {
	return Condition{Field: field, Kind: CondContains, Value: value}
}

// TagEquals builds an exact-match predicate over a TAG field.
func TagEquals(field, value string) Condition {
	return Condition{Field: field, Kind: CondTagEquals, Value: value}
}

// Between builds an inclusive numeric range predicate.
func Between(field string, lo, hi float64) Condition {
	return Condition{Field: field, Kind: CondRange, Min: lo, Max: hi}
}

// ListQuery is the input for paginated, sorted search.
type ListQuery struct {
	Index        string
	Filters      []Condition
	Offset       int
	Limit        int
	SortBy       string
	Descending   bool
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
