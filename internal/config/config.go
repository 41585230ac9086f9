// Package config loads Calor's runtime configuration from environment
// variables, in the same spirit as the effect-execution environment the
// core compiler reads at startup (CALOR_* mirrors AILANG_*).
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/juanmicrosoft/calor/internal/resolver"
)

// Defaults match spec §4.5's k-induction bound and a conservative SMT
// query timeout.
const (
	DefaultKMax          = 10
	DefaultSMTTimeoutMS  = 10000
)

// Config is the resolved, immutable configuration for one compilation.
type Config struct {
	// Strict selects the Effect Resolver's unknown-call policy: strict
	// treats unknown as top, lenient treats it as empty with a warning.
	Strict bool
	// Enforce, when false, downgrades ForbiddenEffect from a hard
	// failure to a reported warning — useful for incremental adoption.
	Enforce bool
	// KMax holds CALOR_K_MAX. Nothing passes it to the Verifier, which
	// always uses verify.KMax.
	KMax int
	// SMTTimeout holds CALOR_SMT_TIMEOUT_MS. Nothing passes it to the
	// solver, which uses smt.NewBoundedSolver's own timeout.
	SMTTimeout time.Duration
	// ManifestSearchPaths holds the entries of CALOR_MANIFEST_PATH. No
	// loader reads it; the CLI loads only the files given with --manifest.
	ManifestSearchPaths []string
}

// Policy returns the Effect Resolver policy implied by Strict.
func (c Config) Policy() resolver.Policy {
	if c.Strict {
		return resolver.PolicyStrict
	}
	return resolver.PolicyLenient
}

// Load reads configuration from the process environment, applying
// defaults for anything unset or malformed.
func Load() Config {
	return Config{
		Strict:              boolEnv("CALOR_STRICT", false),
		Enforce:             boolEnv("CALOR_ENFORCE", true),
		KMax:                intEnv("CALOR_K_MAX", DefaultKMax),
		SMTTimeout:          msEnv("CALOR_SMT_TIMEOUT_MS", DefaultSMTTimeoutMS),
		ManifestSearchPaths: pathListEnv("CALOR_MANIFEST_PATH"),
	}
}

func boolEnv(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func intEnv(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func msEnv(name string, defMS int) time.Duration {
	return time.Duration(intEnv(name, defMS)) * time.Millisecond
}

func pathListEnv(name string) []string {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, string(filepath.ListSeparator))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
