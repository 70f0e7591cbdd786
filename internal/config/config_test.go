package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ream-lab/catex/internal/runopts"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaultsExpectationModeAndShunts(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "per_line_flow_limit: true\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ExpectationMode != "source_compat" {
		t.Fatalf("expected default expectation_mode source_compat, got %q", c.ExpectationMode)
	}
	if c.IncludeShunts == nil || !*c.IncludeShunts {
		t.Fatalf("expected default include_shunts true")
	}

	opts := c.ToRunOptions()
	if opts.ExpectationMode != runopts.SourceCompat {
		t.Fatalf("expected SourceCompat, got %v", opts.ExpectationMode)
	}
	if !opts.PerLineFlowLimit {
		t.Fatalf("expected PerLineFlowLimit true to carry through")
	}
}

func TestValidateRejectsUnknownExpectationMode(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "expectation_mode: bogus\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown expectation_mode")
	}
}

func TestValidateRejectsNegativeShedPenalty(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "shed_penalty: -1\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for a negative shed_penalty")
	}
}
