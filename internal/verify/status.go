package verify

import "github.com/juanmicrosoft/calor/internal/smt"

// Status is one contract's verification outcome (spec §4.5 "Outputs").
type Status int

const (
	Proven Status = iota
	Unproven
	Disproven
	Unsupported
	Skipped
)

func (s Status) String() string {
	switch s {
	case Proven:
		return "proven"
	case Unproven:
		return "unproven"
	case Disproven:
		return "disproven"
	case Unsupported:
		return "unsupported"
	case Skipped:
		return "skipped"
	default:
		return "?"
	}
}

// Kind distinguishes which part of a function a ContractResult covers.
type Kind int

const (
	Precondition Kind = iota
	Postcondition
	LoopInvariant
)

func (k Kind) String() string {
	switch k {
	case Precondition:
		return "precondition"
	case Postcondition:
		return "postcondition"
	case LoopInvariant:
		return "loop invariant"
	default:
		return "?"
	}
}

// ContractResult is one discharged contract's outcome.
type ContractResult struct {
	Kind            Kind
	Status          Status
	Index           int // position among this function's contracts of this Kind
	Counterexample  *smt.Model
	Message         string
}

// FunctionReport aggregates every contract result for one function.
type FunctionReport struct {
	FunctionName string
	Results      []ContractResult
}

// Tally counts results by status, the per-function aggregate spec §4.5
// "Outputs" calls for.
func (r FunctionReport) Tally() map[Status]int {
	counts := make(map[Status]int)
	for _, c := range r.Results {
		counts[c.Status]++
	}
	return counts
}

// ModuleReport aggregates every function's report plus a module-wide tally.
type ModuleReport struct {
	Functions []FunctionReport
}

// Tally sums every function's tally into one module-wide count.
func (m ModuleReport) Tally() map[Status]int {
	total := make(map[Status]int)
	for _, fr := range m.Functions {
		for status, n := range fr.Tally() {
			total[status] += n
		}
	}
	return total
}
