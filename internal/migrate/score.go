package migrate

import (
	"regexp"
	"strings"
)

// Bucket is the severity bucket a file's migration score falls into
// (spec §4.6 "Scoring"), the same four-level shape
// internal/eval_analyzer uses for AILANG eval-failure impact
// (calculateImpact/impactScore), rebased onto migration-difficulty score.
type Bucket int

const (
	Low Bucket = iota
	Medium
	High
	Critical
)

func (b Bucket) String() string {
	switch b {
	case Critical:
		return "critical"
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

func bucketOf(score int) Bucket {
	switch {
	case score >= 76:
		return Critical
	case score >= 51:
		return High
	case score >= 26:
		return Medium
	default:
		return Low
	}
}

// Dimensions holds the five normalized [0,100] density scores spec
// §4.6 "Scoring" names.
type Dimensions struct {
	Validation    int // D1
	NullHandling  int // D2
	ErrorHandling int // D3
	SideEffects   int // D4
	Simplicity    int // D5
}

// weights, applied to each dimension before the unsupported-construct
// penalty; chosen so validation/error-handling density (the dimensions
// most predictive of migration effort per spec §4.6) dominate the sum.
var weights = Dimensions{Validation: 25, NullHandling: 15, ErrorHandling: 25, SideEffects: 20, Simplicity: 15}

var (
	argCheckPattern   = regexp.MustCompile(`\bthrow\s+new\s+ArgumentException\b|\bthrow\s+new\s+ArgumentNullException\b|\bArgumentNullException\.ThrowIfNull\b`)
	nullHandlePattern = regexp.MustCompile(`\?\.|\?\?`)
	tryCatchPattern   = regexp.MustCompile(`\btry\s*\{|\bcatch\s*\(|\bcustom\w*Exception\b`)
	sideEffectPattern = regexp.MustCompile(`\bFile\.|\bConsole\.|\bHttpClient\b|\bSqlConnection\b|\bStream\b|\bSocket\b`)
)

// densityPer100Lines counts pattern matches across src, normalized to
// a per-100-source-line rate, then capped at 100 for the [0,100] range
// (spec §4.6 "count ... per 100 source lines").
func densityPer100Lines(src string, pattern *regexp.Regexp) int {
	lines := strings.Count(src, "\n") + 1
	count := len(pattern.FindAllString(src, -1))
	rate := count * 100 / lines
	if rate > 100 {
		return 100
	}
	return rate
}

// Score computes the five dimensions, the unsupported-construct
// penalty, and the final bucketed score for one C# source file (spec
// §4.6 "Scoring").
type Score struct {
	Dimensions  Dimensions
	Unsupported []string
	Penalty     int
	Total       int
	Bucket      Bucket
}

// ScoreFile computes a file's migration-difficulty score.
func ScoreFile(path, src string) Score {
	dims := Dimensions{
		Validation:    densityPer100Lines(src, argCheckPattern),
		NullHandling:  densityPer100Lines(src, nullHandlePattern),
		ErrorHandling: densityPer100Lines(src, tryCatchPattern),
		SideEffects:   densityPer100Lines(src, sideEffectPattern),
		Simplicity:    simplicityScore(fileComplexity(path, src)),
	}

	weighted := dims.Validation*weights.Validation + dims.NullHandling*weights.NullHandling +
		dims.ErrorHandling*weights.ErrorHandling + dims.SideEffects*weights.SideEffects +
		dims.Simplicity*weights.Simplicity
	weighted /= 100

	unsupported := detectUnsupported(src)
	penalty := len(unsupported) * 8

	total := weighted - penalty
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Score{
		Dimensions:  dims,
		Unsupported: unsupported,
		Penalty:     penalty,
		Total:       total,
		Bucket:      bucketOf(total),
	}
}
