package config

import (
	"testing"
	"time"

	"github.com/juanmicrosoft/calor/internal/resolver"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CALOR_STRICT", "")
	t.Setenv("CALOR_ENFORCE", "")
	t.Setenv("CALOR_K_MAX", "")
	t.Setenv("CALOR_SMT_TIMEOUT_MS", "")
	t.Setenv("CALOR_MANIFEST_PATH", "")

	c := Load()
	if c.Strict {
		t.Error("Strict should default false")
	}
	if !c.Enforce {
		t.Error("Enforce should default true")
	}
	if c.KMax != DefaultKMax {
		t.Errorf("KMax = %d, want %d", c.KMax, DefaultKMax)
	}
	if c.SMTTimeout != DefaultSMTTimeoutMS*time.Millisecond {
		t.Errorf("SMTTimeout = %v, want %v", c.SMTTimeout, DefaultSMTTimeoutMS*time.Millisecond)
	}
	if c.Policy() != resolver.PolicyLenient {
		t.Error("default policy should be lenient")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CALOR_STRICT", "true")
	t.Setenv("CALOR_K_MAX", "25")

	c := Load()
	if !c.Strict {
		t.Error("Strict should be true")
	}
	if c.KMax != 25 {
		t.Errorf("KMax = %d, want 25", c.KMax)
	}
	if c.Policy() != resolver.PolicyStrict {
		t.Error("strict=true should select the strict policy")
	}
}

func TestIntEnvIgnoresMalformed(t *testing.T) {
	t.Setenv("CALOR_K_MAX", "not-a-number")
	c := Load()
	if c.KMax != DefaultKMax {
		t.Errorf("KMax = %d, want default %d for malformed input", c.KMax, DefaultKMax)
	}
}
