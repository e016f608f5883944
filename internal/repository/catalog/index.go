package catalog

import "github.com/kailas-cloud/restodex/internal/db"

// Index field aliases.
const (
	fieldNameLC    = "name_lc"
	fieldNameChars = "name_chars"
	fieldSeq       = "seq"
	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
)

// buildIndex defines the restaurant JSON index: a suffix-trie TAG for
// substring name search, a per-character TAG for one-rune searches the
// suffix trie cannot answer, NUMERIC coordinates for the geo prefilter and
// a sortable seq for stable pagination.
func buildIndex(name, prefix string) *db.IndexDefinition {
	return db.NewIndex(name).
		OnJSON().
		Prefix(prefix).
		TagWithOpts("$.name_lc", "|", false).As(fieldNameLC).WithSuffixTrie().
		TagWithOpts("$.name_chars[*]", "|", false).As(fieldNameChars).
		Numeric("$.location.latitude").As(fieldLatitude).
		Numeric("$.location.longitude").As(fieldLongitude).
		Numeric("$.seq").As(fieldSeq).Sortable().
		MustBuild()
}
