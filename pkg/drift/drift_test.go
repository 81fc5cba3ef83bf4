package drift

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/outline_viewer/pkg/analysis"
)

func statsWith(count, depth, notes, roots int) analysis.Stats {
	return analysis.Stats{
		ThoughtCount: count,
		RootChildren: roots,
		MaxDepth:     depth,
		NoteCount:    notes,
	}
}

func TestBaselineRoundTrip(t *testing.T) {
	root := t.TempDir()
	path := DefaultPath(root)

	if Exists(path) {
		t.Fatal("baseline should not exist yet")
	}

	b := New(statsWith(10, 3, 2, 4), "before restructure")
	if err := b.Save(path); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatal("baseline not created")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Description != "before restructure" {
		t.Errorf("description = %q", loaded.Description)
	}
	if loaded.Stats.ThoughtCount != 10 || loaded.Stats.MaxDepth != 3 {
		t.Errorf("stats did not round trip: %+v", loaded.Stats)
	}
	if !strings.Contains(loaded.Summary(), "Thoughts: 10") {
		t.Errorf("unexpected summary: %q", loaded.Summary())
	}
}

func TestLoadMissingBaseline(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing baseline")
	}
}

func TestCalculateNoDrift(t *testing.T) {
	b := New(statsWith(10, 3, 2, 4), "")
	c := New(statsWith(11, 3, 2, 4), "")

	result := NewCalculator(b, c, DefaultConfig()).Calculate()
	if result.HasDrift {
		t.Errorf("unexpected drift: %+v", result.Alerts)
	}
	if result.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", result.ExitCode())
	}
}

func TestCalculateContentLossIsCritical(t *testing.T) {
	b := New(statsWith(100, 3, 0, 4), "")
	c := New(statsWith(60, 3, 0, 4), "")

	result := NewCalculator(b, c, DefaultConfig()).Calculate()
	if result.CriticalCount != 1 {
		t.Fatalf("critical count = %d, want 1: %+v", result.CriticalCount, result.Alerts)
	}
	if result.Alerts[0].Type != AlertContentLoss {
		t.Errorf("alert type = %s", result.Alerts[0].Type)
	}
	if result.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", result.ExitCode())
	}
}

func TestCalculateDepthGrowthIsWarning(t *testing.T) {
	b := New(statsWith(10, 3, 0, 4), "")
	c := New(statsWith(10, 7, 0, 4), "")

	result := NewCalculator(b, c, DefaultConfig()).Calculate()
	if result.WarningCount != 1 || result.CriticalCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", result.ExitCode())
	}
}

func TestCalculateInfoOnlyExitsZero(t *testing.T) {
	b := New(statsWith(10, 3, 5, 4), "")
	c := New(statsWith(10, 3, 4, 5), "")

	result := NewCalculator(b, c, DefaultConfig()).Calculate()
	if !result.HasDrift {
		t.Fatal("expected info alerts")
	}
	if result.InfoCount != 2 {
		t.Errorf("info count = %d, want 2 (note loss + shape change)", result.InfoCount)
	}
	if result.ExitCode() != 0 {
		t.Errorf("info-only exit code = %d, want 0", result.ExitCode())
	}
}

func TestLoadConfigDefaultsAndOverride(t *testing.T) {
	root := t.TempDir()

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}

	if err := os.MkdirAll(filepath.Join(root, ".ov"), 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "content_loss_pct: 10\ndepth_increase_threshold: 1\n"
	if err := os.WriteFile(filepath.Join(root, ".ov", "drift.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ContentLossPct != 10 || cfg.DepthIncreaseThreshold != 1 {
		t.Errorf("override not applied: %+v", cfg)
	}
}

func TestResultSummary(t *testing.T) {
	var r Result
	if got := r.Summary(); got != "No drift detected.\n" {
		t.Errorf("clean summary = %q", got)
	}

	r = Result{
		HasDrift:      true,
		CriticalCount: 1,
		Alerts:        []Alert{{Severity: SeverityCritical, Message: "boom"}},
	}
	if s := r.Summary(); !strings.Contains(s, "boom") || !strings.Contains(s, "1 critical") {
		t.Errorf("summary = %q", s)
	}
}
