package migrate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/juanmicrosoft/calor/internal/ast"
)

// ConversionStats counts nodes by category, visited vs. converted vs.
// skipped (spec §4.6 "Conversion contract": "conversion statistics
// (nodes visited/converted/skipped, by category)").
type ConversionStats struct {
	Visited   map[string]int
	Converted map[string]int
	Skipped   map[string]int
}

func newStats() ConversionStats {
	return ConversionStats{Visited: map[string]int{}, Converted: map[string]int{}, Skipped: map[string]int{}}
}

func (s ConversionStats) visit(category string, converted bool) {
	s.Visited[category]++
	if converted {
		s.Converted[category]++
	} else {
		s.Skipped[category]++
	}
}

// ConversionResult is the per-file output of Convert (spec §4.6
// "Conversion contract").
type ConversionResult struct {
	Output string
	Issues []Issue
	Stats  ConversionStats
}

// ConvertOptions configures fallback behavior when a file contains an
// unsupported construct (spec §4.6 "conversion of a file containing
// these falls back to graceful-TODO emission (opt-out) or hard failure
// (opt-in)").
type ConvertOptions struct {
	FailOnUnsupported bool
}

var (
	classPattern  = regexp.MustCompile(`^\s*(?:public|internal|private)?\s*(?:sealed\s+|abstract\s+)?class\s+(\w+)(?:\s*:\s*(\w+))?`)
	methodPattern = regexp.MustCompile(`^\s*(?:public|internal|private|protected)\s+(?:static\s+|virtual\s+|override\s+)*(\w+(?:<[^>]*>)?)\s+(\w+)\s*\(([^)]*)\)`)
	fieldPattern  = regexp.MustCompile(`^\s*(?:public|internal|private)\s+(?:readonly\s+)?(\w+)\s+(\w+)\s*(?:=\s*[^;]+)?;`)
	ifPattern     = regexp.MustCompile(`^\s*if\s*\((.*)\)\s*{?\s*$`)
	returnPattern = regexp.MustCompile(`^\s*return\s+(.*);\s*$`)
	throwPattern  = regexp.MustCompile(`^\s*throw\s+new\s+(\w+)\(([^)]*)\)\s*;\s*$`)
)

// csharpToCalorType maps a closed set of common C# primitive type names
// to their Calor surface spelling; anything else passes through
// unchanged (a best-effort class/enum name is usually already valid).
func csharpToCalorType(t string) string {
	switch t {
	case "int":
		return "i32"
	case "long":
		return "i64"
	case "bool":
		return "bool"
	case "string":
		return "string"
	case "void":
		return "void"
	default:
		return t
	}
}

// Convert performs a best-effort line-oriented conversion of C# source
// into Calor source text. It recognizes a closed set of common
// constructs (class/method/field declarations, if, return, throw) and
// rewrites them directly; anything else is carried through as a
// TODO-wrapped passthrough line with a Warning-severity issue, the
// "graceful-TODO emission" fallback (spec §4.6), unless opts requests
// a hard failure on any unsupported construct, in which case detecting
// one aborts the conversion with an Error issue and empty output (spec
// §4.6 "(b) an ordered list of issues").
func Convert(path, src string, opts ConvertOptions) ConversionResult {
	stats := newStats()
	var issues []Issue

	for _, name := range detectUnsupported(src) {
		sev := Info
		if opts.FailOnUnsupported {
			sev = Error
		}
		issues = append(issues, Issue{Severity: sev, FeatureTag: name, Message: fmt.Sprintf("unsupported construct: %s", name)})
	}
	if opts.FailOnUnsupported {
		for _, issue := range issues {
			if issue.Severity == Error {
				return ConversionResult{Output: "", Issues: issues, Stats: stats}
			}
		}
	}

	lines := strings.Split(src, "\n")
	var out strings.Builder

	for i, line := range lines {
		span := ast.Span{Start: ast.Pos{Line: i + 1, File: path}}

		switch {
		case classPattern.MatchString(line):
			m := classPattern.FindStringSubmatch(line)
			out.WriteString(fmt.Sprintf("class %s {\n", m[1]))
			stats.visit("class", true)

		case methodPattern.MatchString(line):
			m := methodPattern.FindStringSubmatch(line)
			ret, name, params := csharpToCalorType(m[1]), m[2], convertParams(m[3])
			out.WriteString(fmt.Sprintf("fn %s(%s) -> %s {\n", name, params, ret))
			stats.visit("method", true)

		case fieldPattern.MatchString(line):
			m := fieldPattern.FindStringSubmatch(line)
			out.WriteString(fmt.Sprintf("  field %s: %s\n", m[2], csharpToCalorType(m[1])))
			stats.visit("field", true)

		case ifPattern.MatchString(line):
			m := ifPattern.FindStringSubmatch(line)
			out.WriteString(fmt.Sprintf("if %s {\n", m[1]))
			stats.visit("statement", true)

		case returnPattern.MatchString(line):
			m := returnPattern.FindStringSubmatch(line)
			out.WriteString(fmt.Sprintf("return %s\n", m[1]))
			stats.visit("statement", true)

		case throwPattern.MatchString(line):
			m := throwPattern.FindStringSubmatch(line)
			out.WriteString(fmt.Sprintf("throw %s(%s)\n", m[1], m[2]))
			stats.visit("statement", true)

		case strings.TrimSpace(line) == "" || strings.TrimSpace(line) == "}":
			out.WriteString(line + "\n")
			stats.visit("structural", true)

		default:
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			out.WriteString(fmt.Sprintf("  // TODO: unconverted construct: %s\n", trimmed))
			stats.visit("unclassified", false)
			issues = append(issues, Issue{
				Severity: Warning, FeatureTag: "unclassified-line", Span: span,
				Message:    "line could not be mapped to a known Calor construct",
				Suggestion: "review and hand-port this line",
			})
		}
	}

	return ConversionResult{Output: out.String(), Issues: issues, Stats: stats}
}

// convertParams rewrites a C# parameter list's primitive type names to
// their Calor spellings, leaving parameter order and names intact.
func convertParams(params string) string {
	if strings.TrimSpace(params) == "" {
		return ""
	}
	parts := strings.Split(params, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(strings.TrimSpace(p))
		if len(fields) != 2 {
			out = append(out, strings.TrimSpace(p))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", fields[1], csharpToCalorType(fields[0])))
	}
	return strings.Join(out, ", ")
}
