package batch

// ItemStatus is the outcome of recalculating one project.
type ItemStatus string

// Recalculation outcomes.
const (
	StatusOK      ItemStatus = "ok"
	StatusError   ItemStatus = "error"
	StatusSkipped ItemStatus = "skipped"
)

// Result is the outcome for a single project in a batch recalculation.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// NewOK records a project that got a fresh analytics snapshot.
func NewOK(id string) Result { return Result{id: id, status: StatusOK} }

// NewError records a project whose snapshot could not be computed or stored.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// NewSkipped records a project that vanished between listing and calculation.
func NewSkipped(id string) Result { return Result{id: id, status: StatusSkipped} }

// ID returns the project identifier.
func (r Result) ID() string { return r.id }

// Status returns the outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the failure, if any.
func (r Result) Err() error { return r.err }

// Summary aggregates the per-project outcomes of a recalculation run.
type Summary struct {
	Results    []Result
	Calculated int
	Failed     int
	Skipped    int
}

// Summarize counts outcomes by status. Results keep their input order.
func Summarize(results []Result) Summary {
	s := Summary{Results: results}
	for _, r := range results {
		switch r.status {
		case StatusOK:
			s.Calculated++
		case StatusError:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
