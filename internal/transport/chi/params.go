package chi

import (
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// presentValues drops empty query values so that "?page=" reads as absent.
func presentValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, vs := range q {
		for _, v := range vs {
			if v != "" {
				out[k] = append(out[k], v)
			}
		}
	}
	return out
}

func bindQuery(q url.Values, name string, required bool, dest any, reason string) error {
	if required {
		if _, ok := q[name]; !ok {
			return domain.NewParameterError(name, "is required")
		}
	}
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return domain.NewParameterError(name, reason)
	}
	return nil
}

func bindListParams(r *http.Request) (ListParams, error) {
	var p ListParams
	q := presentValues(r.URL.Query())

	if err := bindQuery(q, "page", false, &p.Page, "must be a positive integer"); err != nil {
		return ListParams{}, err
	}
	if err := bindQuery(q, "limit", false, &p.Limit, "must be a positive integer"); err != nil {
		return ListParams{}, err
	}
	if err := bindQuery(q, "search", false, &p.Search, "must be a single value"); err != nil {
		return ListParams{}, err
	}
	return p, nil
}

func bindLocationParams(r *http.Request) (LocationParams, error) {
	var p LocationParams
	q := presentValues(r.URL.Query())

	if err := bindQuery(q, "latitude", true, &p.Latitude, "must be a number"); err != nil {
		return LocationParams{}, err
	}
	if err := bindQuery(q, "longitude", true, &p.Longitude, "must be a number"); err != nil {
		return LocationParams{}, err
	}
	if err := bindQuery(q, "radius", false, &p.Radius, "must be a number"); err != nil {
		return LocationParams{}, err
	}
	return p, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
