// Package batch describes per-record outcomes of a bulk catalog import.
package batch

// ItemStatus is the processing outcome of a single imported record.
type ItemStatus string

// Import item status values.
const (
	StatusOK      ItemStatus = "ok"
	StatusSkipped ItemStatus = "skipped"
	StatusError   ItemStatus = "error"
)

// Result is the outcome of importing one record.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful result.
func NewOK(id string) Result { return Result{id: id, status: StatusOK} }

// NewSkipped creates a result for a record rejected before writing.
func NewSkipped(id string, reason error) Result {
	return Result{id: id, status: StatusSkipped, err: reason}
}

// NewError creates a result for a record whose write failed.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the record identifier (may be empty for records without one).
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the skip reason or write error, if any.
func (r Result) Err() error { return r.err }

// Report aggregates the results of one import run.
type Report struct {
	Results []Result
}

// Count returns the number of results with the given status.
func (r Report) Count(status ItemStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.status == status {
			n++
		}
	}
	return n
}

// Failed returns every result that is not OK.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.status != StatusOK {
			out = append(out, res)
		}
	}
	return out
}
