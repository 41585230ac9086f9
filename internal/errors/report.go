package errors

import (
	"encoding/json"
	"errors"

	"github.com/juanmicrosoft/calor/internal/ast"
)

// Report is the canonical structured diagnostic for the Calor core. All
// diagnostic builders return *Report, which can be wrapped as ReportError
// (spec §6: "a diagnostic stream ... severity, code, span, message,
// optional call-chain").
type Report struct {
	Schema    string         `json:"schema"`               // always "calor.diagnostic/v1"
	Code      string         `json:"code"`                 // one of the closed codes in codes.go
	Phase     string         `json:"phase"`                // manifest | resolver | binder | effects | verifier | migration
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
	Span      *ast.Span      `json:"span,omitempty"`
	CallChain []string       `json:"call_chain,omitempty"` // shortest path from function to effect source (§4.4)
	Data      map[string]any `json:"data,omitempty"`
	Fix       *Fix           `json:"fix,omitempty"`
}

// Fix is a suggested remediation with a confidence score in [0, 1].
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report as an error so it survives errors.As()
// unwrapping across component boundaries.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown diagnostic"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders the report as deterministic JSON.
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		data, err := json.Marshal(r)
		return string(data), err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	return string(data), err
}

// New builds a Report with the schema stamped in.
func New(code, phase string, severity Severity, message string, span *ast.Span) *Report {
	return &Report{
		Schema:   "calor.diagnostic/v1",
		Code:     code,
		Phase:    phase,
		Severity: severity,
		Message:  message,
		Span:     span,
		Data:     map[string]any{},
	}
}

// NewGeneric builds a report for a tooling failure that wraps a bare Go
// error (spec §7 kind 4: tooling failures).
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:   "calor.diagnostic/v1",
		Code:     "ToolingFailure",
		Phase:    phase,
		Severity: SeverityError,
		Message:  err.Error(),
		Data:     map[string]any{},
	}
}

// Bag is an ordered, append-only collection of diagnostics, matching the
// Program's "diagnostic bag" ownership in spec §3.
type Bag struct {
	reports []*Report
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(r *Report) {
	b.reports = append(b.reports, r)
}

// All returns every diagnostic added so far, in insertion order.
func (b *Bag) All() []*Report {
	return b.reports
}

// HasErrors reports whether any diagnostic in the bag is error severity.
func (b *Bag) HasErrors() bool {
	for _, r := range b.reports {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only error-severity diagnostics.
func (b *Bag) Errors() []*Report {
	var out []*Report
	for _, r := range b.reports {
		if r.Severity == SeverityError {
			out = append(out, r)
		}
	}
	return out
}
