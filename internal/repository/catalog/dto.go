package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// document is the stored JSON form: the record plus search helpers.
type document struct {
	restaurant.Restaurant
	NameLC    string   `json:"name_lc"`
	NameChars []string `json:"name_chars"`
	Seq       int64    `json:"seq"`
}

func marshalDocument(r *restaurant.Restaurant, seq int64) ([]byte, error) {
	lc := strings.ToLower(r.Name)
	return json.Marshal(document{
		Restaurant: *r,
		NameLC:     lc,
		NameChars:  nameChars(lc),
		Seq:        seq,
	})
}

// nameChars lists the distinct runes of a lowercased name in order of first
// appearance. Whitespace and the tag separator are left out.
func nameChars(lc string) []string {
	out := make([]string, 0, len(lc))
	seen := make(map[rune]struct{}, len(lc))
	for _, c := range lc {
		if c == '|' || unicode.IsSpace(c) {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, string(c))
	}
	return out
}

func unmarshalRestaurant(data []byte) (restaurant.Restaurant, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return restaurant.Restaurant{}, err
	}
	return doc.Restaurant, nil
}

// unwrapRoot strips the single-element array JSONPath "$" reads return.
func unwrapRoot(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(s), &arr); err == nil && len(arr) == 1 {
			return string(arr[0])
		}
	}
	return s
}

func decodeEntries(entries []db.SearchEntry) ([]restaurant.Restaurant, error) {
	out := make([]restaurant.Restaurant, 0, len(entries))
	for _, e := range entries {
		raw, ok := e.Fields["$"]
		if !ok {
			return nil, fmt.Errorf("search entry %s: missing document body", e.Key)
		}
		r, err := unmarshalRestaurant([]byte(unwrapRoot(raw)))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		out = append(out, r)
	}
	return out, nil
}
