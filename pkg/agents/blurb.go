// Package agents provides AGENTS.md integration for AI coding agents:
// detection and injection of ov usage instructions into agent configuration
// files, plus the guard that keeps robot invocations away from the terminal.
package agents

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// BlurbVersion is the current version of the agent instructions blurb.
// Increment when the blurb format changes incompatibly.
const BlurbVersion = 1

// BlurbStartMarker marks the beginning of injected agent instructions.
const BlurbStartMarker = "<!-- ov-agent-instructions-v1 -->"

// BlurbEndMarker marks the end of injected agent instructions.
const BlurbEndMarker = "<!-- end-ov-agent-instructions -->"

// AgentBlurb contains the instructions appended to AGENTS.md files.
const AgentBlurb = `<!-- ov-agent-instructions-v1 -->

---

## Outline Viewer Integration

This project keeps a thought outline in ` + "`" + `.ov/outline.json` + "`" + `, viewable with
[ov](https://github.com/Dicklesworthstone/outline_viewer).

### Commands for agents

` + "```" + `bash
# TUI (avoid in automated sessions)
ov

# Structured output (use these instead)
ov --robot-stats      # Outline shape statistics as JSON
ov --robot-outline    # Visible rows with depth/focus/offsets as JSON
ov --export-text -    # Plain-text rendering to stdout
ov --robot-help       # Full agent interface reference
` + "```" + `

### Key concepts

- Thoughts are stored flat; hierarchy comes from ` + "`" + `parent_id` + "`" + ` references.
- Only children of expanded thoughts are visible; ` + "`" + `--robot-outline` + "`" + ` reflects
  the persisted expansion state.
- ` + "`" + `focus` + "`" + ` grades each row by its distance from the cursor:
  show, dim, hide, or hide-shift.

<!-- end-ov-agent-instructions -->`

// SupportedAgentFiles lists the filenames that can carry agent instructions,
// in lookup order.
var SupportedAgentFiles = []string{
	"AGENTS.md",
	"CLAUDE.md",
	"agents.md",
	"claude.md",
}

var blurbVersionRegex = regexp.MustCompile(`<!-- ov-agent-instructions-v(\d+) -->`)

// ContainsBlurb checks whether the content already carries an ov blurb of
// any version.
func ContainsBlurb(content string) bool {
	return strings.Contains(content, "<!-- ov-agent-instructions-v")
}

// GetBlurbVersion extracts the version number from existing blurb content,
// or 0 when no blurb is present.
func GetBlurbVersion(content string) int {
	matches := blurbVersionRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return 0
	}
	v, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return v
}

// NeedsUpdate checks whether the content carries an older blurb version.
func NeedsUpdate(content string) bool {
	if !ContainsBlurb(content) {
		return false
	}
	return GetBlurbVersion(content) < BlurbVersion
}

// AppendBlurb appends the agent blurb to the given content.
func AppendBlurb(content string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	return content + AgentBlurb + "\n"
}

// RemoveBlurb removes an existing blurb from the content, including its
// surrounding blank lines.
func RemoveBlurb(content string) string {
	startIdx := strings.Index(content, "<!-- ov-agent-instructions-v")
	if startIdx == -1 {
		return content
	}
	endIdx := strings.Index(content, BlurbEndMarker)
	if endIdx == -1 {
		return content
	}
	endIdx += len(BlurbEndMarker)
	for endIdx < len(content) && (content[endIdx] == '\n' || content[endIdx] == '\r') {
		endIdx++
	}
	for startIdx > 0 && (content[startIdx-1] == '\n' || content[startIdx-1] == '\r') {
		startIdx--
	}
	return content[:startIdx] + content[endIdx:]
}

// UpdateBlurb replaces an existing blurb with the current version.
func UpdateBlurb(content string) string {
	return AppendBlurb(RemoveBlurb(content))
}

// Setup injects (or updates) the agent blurb in the given directory. It
// prefers an existing agent file; with none present it creates AGENTS.md.
// The returned path is the touched file; changed is false when the current
// blurb was already up to date.
func Setup(dir string) (path string, changed bool, err error) {
	for _, name := range SupportedAgentFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
	}
	if path == "" {
		path = filepath.Join(dir, SupportedAgentFiles[0])
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return path, false, fmt.Errorf("read %s: %w", path, err)
	}
	content := string(data)

	switch {
	case !ContainsBlurb(content):
		content = AppendBlurb(content)
	case NeedsUpdate(content):
		content = UpdateBlurb(content)
	default:
		return path, false, nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return path, false, fmt.Errorf("write %s: %w", path, err)
	}
	return path, true, nil
}
