package analyzer

import (
	"errors"
	"fmt"

	"github.com/docgraph-labs/docgraph/internal/graph"
)

// ErrAborted signals that a handler chose to stop without completing its
// work on a statement. The dispatcher treats it as "nothing to do here" and
// moves on to the next matching handler; it is never surfaced as a failure.
var ErrAborted = errors.New("analyzer: handler aborted")

// Abort wraps ErrAborted with a reason for debug logging.
func Abort(reason string) error {
	return fmt.Errorf("%w: %s", ErrAborted, reason)
}

// NamespaceMissingError reports a reference that stayed unresolved after the
// resolution engine exhausted its retry budget. It is recoverable at
// entity-registration granularity: the registration that needed the
// namespace is abandoned, the run continues.
type NamespaceMissingError struct {
	Ref      *graph.Reference
	Attempts int
	File     string
	Line     int
}

func (e *NamespaceMissingError) Error() string {
	msg := fmt.Sprintf("namespace missing: %s unresolved after %d attempts", e.Ref.Path(), e.Attempts)
	if e.File != "" {
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.File, e.Line)
	}
	return msg
}

// ContractError reports a programming error in a handler implementation,
// such as a descriptor without a factory. It is fatal and never retried.
type ContractError struct {
	Handler string
	Op      string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("handler contract violation: %s: %s", e.Handler, e.Op)
}

// Diagnostic records one recovered namespace-missing condition for the
// end-of-run report.
type Diagnostic struct {
	Ref  string
	File string
	Line int
}

// Diagnostics collects recovered conditions across a run. Processing is
// single-threaded, so no locking.
type Diagnostics struct {
	entries []Diagnostic
}

func (d *Diagnostics) Record(err *NamespaceMissingError) {
	d.entries = append(d.entries, Diagnostic{
		Ref:  err.Ref.Path(),
		File: err.File,
		Line: err.Line,
	})
}

// Entries returns the recorded diagnostics in occurrence order.
func (d *Diagnostics) Entries() []Diagnostic { return d.entries }

func (d *Diagnostics) Len() int { return len(d.entries) }
