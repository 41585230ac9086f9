package migrate

import "regexp"

// UnsupportedConstruct is one entry in the hard-coded list spec §4.6
// names. Detection is a best-effort lexical scan over raw C# source —
// the analyzer has no full C# parser in this repository, so each
// pattern is a conservative regular expression rather than a syntax
// check; false negatives are acceptable, false positives are not (a
// construct flagged here falls back to graceful-TODO emission or hard
// failure, so over-flagging would wrongly block convertible files).
type UnsupportedConstruct struct {
	Name    string
	Pattern *regexp.Regexp
}

// unsupportedConstructs is the closed list spec §4.6 "Unsupported
// constructs (hard-coded list)" enumerates.
var unsupportedConstructs = []UnsupportedConstruct{
	{"switch expression", regexp.MustCompile(`\bswitch\s*{[^{}]*=>`)},
	{"relational pattern", regexp.MustCompile(`\bis\s+(?:[<>]=?|not)\s`)},
	{"compound pattern", regexp.MustCompile(`\bis\s+\w+\s+(?:and|or)\s+\w+`)},
	{"target-typed new", regexp.MustCompile(`[:=(,]\s*new\s*\(`)},
	{"null-conditional method call", regexp.MustCompile(`\w\?\.\w+\(`)},
	{"named argument", regexp.MustCompile(`\(\s*\w+\s*:\s*[^)]`)},
	{"primary constructor", regexp.MustCompile(`\bclass\s+\w+\s*\([^)]*\)\s*(?::\s*\w+)?\s*{`)},
	{"out parameter", regexp.MustCompile(`\bout\s+(?:var\s+)?\w+\s+\w+`)},
	{"ref parameter", regexp.MustCompile(`\bref\s+\w+\s+\w+`)},
	{"declaration pattern", regexp.MustCompile(`\bis\s+\w+(?:<[^>]*>)?\s+\w+\b`)},
	{"throw expression", regexp.MustCompile(`\?\?\s*throw\b|\?\s*throw\b`)},
	{"range/index-from-end", regexp.MustCompile(`\[\s*\^?\d*\s*\.\.\s*\^?\d*\s*\]|\^\d+`)},
	{"list pattern", regexp.MustCompile(`\bis\s*\[[^\]]*\]`)},
	{"raw string literal", regexp.MustCompile(`"""`)},
	{"spread in collection expression", regexp.MustCompile(`\[\s*\.\.\.\w`)},
}

// detectUnsupported scans src and returns the name of each construct
// found, once per construct however many times it occurs, for the
// penalty tally and the per-construct issues Convert emits.
func detectUnsupported(src string) []string {
	var found []string
	for _, c := range unsupportedConstructs {
		if c.Pattern.MatchString(src) {
			found = append(found, c.Name)
		}
	}
	return found
}
