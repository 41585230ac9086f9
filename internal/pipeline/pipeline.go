// Package pipeline orchestrates one file's compilation through the
// three in-process phases spec §5 "Ordering guarantees" fixes
// globally: Binder, then Effect Engine, then Verifier. Project-level
// diagnostic aggregation across many files (sorted by source path) is
// also implemented here, the shape a driver embedding the core needs
// without re-deriving the ordering rule itself.
package pipeline

import (
	"sort"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/binder"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/effectengine"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/resolver"
	"github.com/juanmicrosoft/calor/internal/smt"
	"github.com/juanmicrosoft/calor/internal/verify"
)

// Options configures one pipeline run.
type Options struct {
	// Enforce controls whether a ForbiddenEffect violation is an error
	// or a downgraded warning (spec §4.4 "Policy surface").
	Enforce bool
	// Verify opts into the Verifier pass (spec §4.5 "Modes"). When
	// false the pass is skipped entirely and every contract's status is
	// Skipped without ever constructing a solver.
	Verify bool
	// Solver is used when Verify is true; nil falls back to
	// smt.NewBoundedSolver().
	Solver smt.Solver
}

// FileResult is one file's compilation outcome.
type FileResult struct {
	Path         string
	Module       *core.Module
	Diagnostics  []*calerrors.Report
	Verification *verify.ModuleReport
}

// RunFile binds file, runs the effect engine over the result, and
// optionally verifies its contracts, in that fixed order (spec §5).
func RunFile(file *ast.File, r *resolver.Resolver, opts Options) FileResult {
	b := binder.New(r)
	mod, bindBag := b.Bind(file)

	diagnostics := append([]*calerrors.Report(nil), bindBag.All()...)

	engine := effectengine.New(r, opts.Enforce)
	effectBag := engine.Run(mod)
	diagnostics = append(diagnostics, effectBag.All()...)

	var verification *verify.ModuleReport
	if opts.Verify {
		solver := opts.Solver
		if solver == nil {
			solver = smt.NewBoundedSolver()
		}
		v := verify.New(solver, true)
		verification = v.Run(mod)
		diagnostics = append(diagnostics, verifyDiagnostics(verification)...)
	} else {
		v := verify.New(nil, false)
		verification = v.Run(mod)
	}

	return FileResult{Path: file.Path, Module: mod, Diagnostics: diagnostics, Verification: verification}
}

// verifyDiagnostics folds the verifier's loop-invariant and
// unsupported-contract outcomes into the closed diagnostic catalog
// (spec §6): InvariantSynthesized/InvariantUnknown for loop invariants,
// ContractUnsupported for any contract outside the SMT fragment.
// Disproven/Unproven/Proven/Skipped themselves are not diagnostics —
// they live in the verification-result tree (spec §6 output (c)) — the
// diagnostic stream only reports what the catalog names.
func verifyDiagnostics(report *verify.ModuleReport) []*calerrors.Report {
	var out []*calerrors.Report
	for _, fr := range report.Functions {
		for _, c := range fr.Results {
			switch {
			case c.Kind == verify.LoopInvariant && c.Status == verify.Proven:
				out = append(out, calerrors.New(calerrors.InvariantSynthesized, calerrors.PhaseVerifier, calerrors.SeverityInfo,
					fr.FunctionName+": "+c.Message, nil))
			case c.Kind == verify.LoopInvariant && c.Status == verify.Unproven:
				out = append(out, calerrors.New(calerrors.InvariantUnknown, calerrors.PhaseVerifier, calerrors.SeverityWarning,
					fr.FunctionName+": loop invariant synthesis gave up within K_max", nil))
			case c.Status == verify.Unsupported:
				out = append(out, calerrors.New(calerrors.ContractUnsupported, calerrors.PhaseVerifier, calerrors.SeverityWarning,
					fr.FunctionName+": "+c.Kind.String()+" uses a sort or operator outside the SMT fragment", nil))
			}
		}
	}
	return out
}

// AggregateProject merges many files' diagnostics into one ordered
// stream: within a file, phase order is already source order (each
// phase appends in the order it discovered its diagnostics); across
// files, the aggregator sorts by source path (spec §4.3/§5 "Ordering
// guarantees").
func AggregateProject(results []FileResult) []*calerrors.Report {
	sorted := append([]FileResult(nil), results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var out []*calerrors.Report
	for _, r := range sorted {
		out = append(out, r.Diagnostics...)
	}
	return out
}

// ExitCode computes the outer driver's exit status for a project run
// (spec §6 "Exit codes"): 0 on success, 1 if any diagnostic is an
// error, 2 is reserved for invocation errors the caller detects before
// ever reaching the pipeline (unreadable input, malformed manifest).
func ExitCode(diagnostics []*calerrors.Report) int {
	for _, d := range diagnostics {
		if d.Severity == calerrors.SeverityError {
			return 1
		}
	}
	return 0
}
