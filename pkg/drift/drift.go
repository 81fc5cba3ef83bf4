package drift

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity grades a drift alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// AlertType categorizes drift alerts.
type AlertType string

const (
	AlertContentLoss AlertType = "content_loss"
	AlertRapidGrowth AlertType = "rapid_growth"
	AlertDepthGrowth AlertType = "depth_growth"
	AlertNoteLoss    AlertType = "note_loss"
	AlertShapeChange AlertType = "shape_change"
)

// Alert is one detected deviation from the baseline.
type Alert struct {
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	BaselineVal float64   `json:"baseline_value,omitempty"`
	CurrentVal  float64   `json:"current_value,omitempty"`
	Delta       float64   `json:"delta,omitempty"`
}

// Result is the complete drift analysis.
type Result struct {
	HasDrift      bool    `json:"has_drift"`
	Alerts        []Alert `json:"alerts"`
	CriticalCount int     `json:"critical_count"`
	WarningCount  int     `json:"warning_count"`
	InfoCount     int     `json:"info_count"`
}

// ExitCode maps the result onto CI exit codes: 0 OK (info only),
// 1 critical, 2 warning.
func (r Result) ExitCode() int {
	switch {
	case r.CriticalCount > 0:
		return 1
	case r.WarningCount > 0:
		return 2
	default:
		return 0
	}
}

// Summary renders the result for terminal output.
func (r Result) Summary() string {
	if !r.HasDrift {
		return "No drift detected.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Drift detected: %d critical, %d warning, %d info\n\n",
		r.CriticalCount, r.WarningCount, r.InfoCount)
	for _, a := range r.Alerts {
		fmt.Fprintf(&sb, "  [%s] %s\n", a.Severity, a.Message)
	}
	return sb.String()
}

// Config holds drift detection thresholds (.ov/drift.yaml).
type Config struct {
	// ContentLossPct marks a critical alert when the thought count drops
	// by at least this percentage.
	ContentLossPct float64 `yaml:"content_loss_pct"`

	// GrowthWarningPct marks a warning when the thought count grows by at
	// least this percentage.
	GrowthWarningPct float64 `yaml:"growth_warning_pct"`

	// DepthIncreaseThreshold marks a warning when the maximum nesting depth
	// grows by at least this many levels.
	DepthIncreaseThreshold int `yaml:"depth_increase_threshold"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		ContentLossPct:         25,
		GrowthWarningPct:       100,
		DepthIncreaseThreshold: 3,
	}
}

// LoadConfig reads thresholds from .ov/drift.yaml under the document root.
// A missing file yields the defaults.
func LoadConfig(root string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Join(root, ".ov", "drift.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing drift config: %w", err)
	}
	return cfg, nil
}

// Calculator compares a current snapshot to a baseline.
type Calculator struct {
	baseline Baseline
	current  Baseline
	config   Config
}

// NewCalculator builds a calculator over two snapshots.
func NewCalculator(baseline, current Baseline, config Config) *Calculator {
	return &Calculator{baseline: baseline, current: current, config: config}
}

// Calculate runs every drift check and aggregates the alerts.
func (c *Calculator) Calculate() Result {
	var result Result
	add := func(a Alert) {
		result.Alerts = append(result.Alerts, a)
		switch a.Severity {
		case SeverityCritical:
			result.CriticalCount++
		case SeverityWarning:
			result.WarningCount++
		default:
			result.InfoCount++
		}
	}

	base, cur := c.baseline.Stats, c.current.Stats

	if base.ThoughtCount > 0 {
		deltaPct := float64(cur.ThoughtCount-base.ThoughtCount) / float64(base.ThoughtCount) * 100
		if deltaPct <= -c.config.ContentLossPct {
			add(Alert{
				Type:        AlertContentLoss,
				Severity:    SeverityCritical,
				Message:     fmt.Sprintf("thought count dropped %.0f%% (%d -> %d)", -deltaPct, base.ThoughtCount, cur.ThoughtCount),
				BaselineVal: float64(base.ThoughtCount),
				CurrentVal:  float64(cur.ThoughtCount),
				Delta:       deltaPct,
			})
		} else if deltaPct >= c.config.GrowthWarningPct {
			add(Alert{
				Type:        AlertRapidGrowth,
				Severity:    SeverityWarning,
				Message:     fmt.Sprintf("thought count grew %.0f%% (%d -> %d)", deltaPct, base.ThoughtCount, cur.ThoughtCount),
				BaselineVal: float64(base.ThoughtCount),
				CurrentVal:  float64(cur.ThoughtCount),
				Delta:       deltaPct,
			})
		}
	}

	if depthDelta := cur.MaxDepth - base.MaxDepth; depthDelta >= c.config.DepthIncreaseThreshold {
		add(Alert{
			Type:        AlertDepthGrowth,
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("max depth grew by %d levels (%d -> %d)", depthDelta, base.MaxDepth, cur.MaxDepth),
			BaselineVal: float64(base.MaxDepth),
			CurrentVal:  float64(cur.MaxDepth),
			Delta:       float64(depthDelta),
		})
	}

	if cur.NoteCount < base.NoteCount {
		add(Alert{
			Type:        AlertNoteLoss,
			Severity:    SeverityInfo,
			Message:     fmt.Sprintf("notes decreased (%d -> %d)", base.NoteCount, cur.NoteCount),
			BaselineVal: float64(base.NoteCount),
			CurrentVal:  float64(cur.NoteCount),
			Delta:       float64(cur.NoteCount - base.NoteCount),
		})
	}

	if cur.RootChildren != base.RootChildren {
		add(Alert{
			Type:        AlertShapeChange,
			Severity:    SeverityInfo,
			Message:     fmt.Sprintf("top-level thoughts changed (%d -> %d)", base.RootChildren, cur.RootChildren),
			BaselineVal: float64(base.RootChildren),
			CurrentVal:  float64(cur.RootChildren),
			Delta:       float64(cur.RootChildren - base.RootChildren),
		})
	}

	result.HasDrift = len(result.Alerts) > 0
	return result
}
