package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Convertibility is a file's planned migration disposition (spec §4.6
// "Project migration").
type Convertibility int

const (
	Full Convertibility = iota
	Partial
	Skip
)

func (c Convertibility) String() string {
	switch c {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "skip"
	}
}

// PlanEntry is one candidate file's planned disposition and the reason
// for it.
type PlanEntry struct {
	Path           string
	Convertibility Convertibility
	Reason         string
	Score          Score
}

// generatedSuffixes are naming-convention markers for generated files
// spec §4.6 excludes outright.
var generatedSuffixes = []string{".g.cs", ".Designer.cs", ".generated.cs"}

// excludedDirs are output directories spec §4.6 excludes.
var excludedDirs = map[string]bool{"obj": true, "bin": true}

// DiscoverFiles walks root and returns every candidate C# file path,
// skipping generated files and output directories (spec §4.6
// "Discover candidate files").
func DiscoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".cs") {
			return nil
		}
		for _, suf := range generatedSuffixes {
			if strings.HasSuffix(path, suf) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// BuildPlan scores every discovered file and assigns it a
// convertibility disposition (spec §4.6 "Build a migration plan
// enumerating per-file convertibility (Full, Partial, Skip) with a
// reason").
func BuildPlan(root string) ([]PlanEntry, error) {
	files, err := DiscoverFiles(root)
	if err != nil {
		return nil, err
	}

	plan := make([]PlanEntry, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			plan = append(plan, PlanEntry{Path: path, Convertibility: Skip, Reason: "unreadable: " + err.Error()})
			continue
		}
		score := ScoreFile(path, string(data))
		plan = append(plan, planEntry(path, score))
	}
	return plan, nil
}

func planEntry(path string, score Score) PlanEntry {
	switch {
	case score.Bucket == Critical:
		return PlanEntry{Path: path, Convertibility: Skip, Reason: "migration difficulty score is Critical", Score: score}
	case len(score.Unsupported) > 0:
		return PlanEntry{Path: path, Convertibility: Partial, Reason: "contains unsupported constructs: " + strings.Join(score.Unsupported, ", "), Score: score}
	default:
		return PlanEntry{Path: path, Convertibility: Full, Reason: "no unsupported constructs detected", Score: score}
	}
}
