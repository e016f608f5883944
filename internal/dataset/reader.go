// Package dataset reads restaurant dumps in the Zomato API export format.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/restodex/internal/domain"
	dombatch "github.com/kailas-cloud/restodex/internal/domain/batch"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// ErrUnsupportedFormat is returned when the input matches none of the known layouts.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is a decoded dump. Rejected holds one skipped result per record
// that could not be decoded; those records are absent from Records.
type Dataset struct {
	Records  []restaurant.Restaurant
	Rejected []dombatch.Result
}

// Read decodes a dump. Accepted layouts: an array of page documents
// ({"restaurants": [{"restaurant": {...}}]}), an array of wrapped records,
// an array of bare records, or a single page document. Records come back in
// file order; validation is left to the importer. Only a malformed layout is
// an error: a record that fails to decode is rejected and reading goes on.
func Read(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Dataset{}, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}

	var d decoder
	switch data[0] {
	case '{':
		var page rawPage
		if err := json.Unmarshal(data, &page); err != nil {
			return Dataset{}, fmt.Errorf("decode page document: %w", err)
		}
		d.wrapped(page.Restaurants)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return Dataset{}, fmt.Errorf("decode array: %w", err)
		}
		if err := d.array(items); err != nil {
			return Dataset{}, err
		}
	default:
		return Dataset{}, fmt.Errorf("%w: expected JSON object or array", ErrUnsupportedFormat)
	}
	return d.out, nil
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// decoder accumulates records and rejections; n counts record slots in file order.
type decoder struct {
	out Dataset
	n   int
}

func (d *decoder) array(items []json.RawMessage) error {
	for i, item := range items {
		var shape map[string]json.RawMessage
		if err := json.Unmarshal(item, &shape); err != nil {
			return fmt.Errorf("%w: element %d is not an object", ErrUnsupportedFormat, i)
		}

		switch {
		case shape["restaurants"] != nil:
			var page rawPage
			if err := json.Unmarshal(item, &page); err != nil {
				return fmt.Errorf("element %d: decode page document: %w", i, err)
			}
			d.wrapped(page.Restaurants)
		case shape["restaurant"] != nil:
			d.wrapped([]json.RawMessage{item})
		case len(shape) == 0:
			// empty object, nothing to import
		default:
			d.record(item)
		}
	}
	return nil
}

func (d *decoder) wrapped(items []json.RawMessage) {
	for _, item := range items {
		var w struct {
			Restaurant json.RawMessage `json:"restaurant"`
		}
		if err := json.Unmarshal(item, &w); err != nil {
			d.reject(item, err)
			continue
		}
		if len(w.Restaurant) == 0 || bytes.Equal(w.Restaurant, []byte("null")) {
			continue
		}
		d.record(w.Restaurant)
	}
}

func (d *decoder) record(data json.RawMessage) {
	var rec rawRestaurant
	if err := json.Unmarshal(data, &rec); err != nil {
		d.reject(data, err)
		return
	}
	d.n++
	d.out.Records = append(d.out.Records, rec.normalize())
}

func (d *decoder) reject(data json.RawMessage, err error) {
	d.n++
	d.out.Rejected = append(d.out.Rejected, dombatch.NewSkipped(identify(data),
		fmt.Errorf("%w: record %d: %v", domain.ErrInvalidRecord, d.n, err)))
}
