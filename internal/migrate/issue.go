// Package migrate implements the Migration Analyzer (spec §4.6):
// scores and converts C# source into Calor source and drives a
// project-wide migration with bounded parallelism.
//
// Its scoring and issue-aggregation shape is rebased from
// internal/eval_analyzer — which scores and buckets AILANG eval
// failures into the same Critical/High/Medium/Low severities spec §4.6
// uses for migration scores — onto C# source dimensions instead of
// eval failure clusters.
package migrate

import "github.com/juanmicrosoft/calor/internal/ast"

// Severity is an issue's severity (spec §4.6 "Conversion contract").
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "?"
	}
}

// Issue is one conversion finding: which feature triggered it, where,
// severity, and an optional suggested fix.
type Issue struct {
	Severity   Severity
	FeatureTag string
	Span       ast.Span
	Message    string
	Suggestion string
}
