package migrate

import (
	"go/token"
	"regexp"
	"strings"

	"github.com/fzipp/gocyclo"
)

// decisionPoint matches one C# token that gocyclo's Go-AST walk would
// count as a branch: if/else if, for/foreach/while, case, catch, and
// the short-circuit boolean operators. gocyclo itself only walks
// go/ast.Stmt trees, which a C# file has none of, so the counting rule
// — one unit of complexity per decision point, baseline 1 — is carried
// over lexically instead of calling into gocyclo's own analysis.
var decisionPoint = regexp.MustCompile(`\b(if|for|foreach|while|case|catch)\b|&&|\|\|`)

// fileComplexity scores a whole C# file's branching density using
// gocyclo's complexity formula (1 + decision points), reported through
// gocyclo's own Stat/Stats types so downstream formatting and sorting
// reuse the library rather than a bespoke reimplementation.
func fileComplexity(path, src string) gocyclo.Stats {
	lines := strings.Split(src, "\n")
	complexity := 1
	firstMatch := -1
	for i, line := range lines {
		n := len(decisionPoint.FindAllString(line, -1))
		if n > 0 && firstMatch < 0 {
			firstMatch = i
		}
		complexity += n
	}
	if firstMatch < 0 {
		firstMatch = 0
	}

	return gocyclo.Stats{{
		PkgName:    "",
		FuncName:   path,
		Complexity: complexity,
		Pos:        token.Position{Filename: path, Line: firstMatch + 1},
	}}
}

// simplicityScore maps a complexity count to the D5 dimension's [0,100]
// range, inverted: a higher decision-point density yields a lower
// score (spec §4.6 "(D5) simplicity — inverse of branching/complexity").
func simplicityScore(stats gocyclo.Stats) int {
	if len(stats) == 0 {
		return 100
	}
	complexity := stats[0].Complexity
	score := 100 - complexity*3
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
