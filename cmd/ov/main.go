package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/outline_viewer/pkg/agents"
	"github.com/Dicklesworthstone/outline_viewer/pkg/analysis"
	"github.com/Dicklesworthstone/outline_viewer/pkg/config"
	"github.com/Dicklesworthstone/outline_viewer/pkg/drift"
	"github.com/Dicklesworthstone/outline_viewer/pkg/export"
	"github.com/Dicklesworthstone/outline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/outline_viewer/pkg/recipe"
	"github.com/Dicklesworthstone/outline_viewer/pkg/store"
	"github.com/Dicklesworthstone/outline_viewer/pkg/ui"
	"github.com/Dicklesworthstone/outline_viewer/pkg/version"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
	"github.com/Dicklesworthstone/outline_viewer/pkg/watcher"
)

// DBFileName is the sqlite index inside the data directory.
const DBFileName = "outline.db"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	robotHelp := flag.Bool("robot-help", false, "Show AI agent help")
	robotStats := flag.Bool("robot-stats", false, "Output outline shape statistics as JSON for AI agents")
	robotOutline := flag.Bool("robot-outline", false, "Output the visible outline rows as JSON for AI agents")
	robotRecipes := flag.Bool("robot-recipes", false, "Output available recipes as JSON for AI agents")
	recipeName := flag.String("recipe", "", "Apply named view recipe (e.g., overview, full, presentation)")
	recipeShort := flag.String("r", "", "Shorthand for --recipe")
	saveBaseline := flag.String("save-baseline", "", "Save current shape statistics as baseline with a description")
	baselineInfo := flag.Bool("baseline-info", false, "Show information about the saved baseline")
	checkDrift := flag.Bool("check-drift", false, "Check for drift from baseline (exit codes: 0=OK, 1=critical, 2=warning)")
	robotDrift := flag.Bool("robot-drift", false, "Output drift check as JSON (use with --check-drift)")
	agentsSetup := flag.Bool("agents-setup", false, "Inject ov usage instructions into the project's AGENTS.md")
	exportSVG := flag.String("export-svg", "", "Export the visible outline to an SVG file")
	exportPNG := flag.String("export-png", "", "Export the visible outline to a PNG file")
	exportText := flag.String("export-text", "", "Export the visible outline to a plain-text file ('-' for stdout)")
	width := flag.Int("width", 0, "Canvas/line width for exports (0 = auto)")
	dir := flag.String("dir", "", "Document root directory (default: walk up from cwd)")
	pick := flag.Bool("pick", false, "Pick a document interactively from configured/discovered documents")
	useDB := flag.Bool("db", false, "Serve the outline from the sqlite index (.ov/outline.db) instead of outline.json")
	syncDB := flag.Bool("sync-db", false, "Import outline.json into the sqlite index (.ov/outline.db) and exit")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when outline.json changes")
	showDrops := flag.Bool("show-drops", false, "Render every drop target, as if a drag were in progress")
	fontSize := flag.Float64("font-size", 0, "Font size driving the indent unit (0 = config/default)")
	maxDistance := flag.Int("max-distance", 0, "Ancestor fade window bound (0 = config/default)")
	flag.Parse()

	// Handle -r shorthand
	if *recipeShort != "" && *recipeName == "" {
		*recipeName = *recipeShort
	}

	if *help {
		fmt.Println("Usage: ov [options]")
		fmt.Println("\nA TUI viewer for infinite collapsible outlines.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *robotHelp {
		fmt.Println("ov (Outline Viewer) AI Agent Interface")
		fmt.Println("======================================")
		fmt.Println("This tool renders a thought outline (.ov/outline.json) and exposes its")
		fmt.Println("computed view as structured output. Use these commands to inspect the")
		fmt.Println("outline without parsing raw JSON.")
		fmt.Println("")
		fmt.Println("Commands:")
		fmt.Println("  --robot-stats")
		fmt.Println("      Outputs shape statistics as JSON.")
		fmt.Println("      Key fields:")
		fmt.Println("      - thought_count, leaf_count, note_count, max_depth")
		fmt.Println("      - depth: distribution of nesting levels (mean/std_dev/p50/p90)")
		fmt.Println("      - branching: distribution of child counts over non-leaf thoughts")
		fmt.Println("")
		fmt.Println("  --robot-outline")
		fmt.Println("      Outputs the visible flattened outline as JSON.")
		fmt.Println("      One row per visible thought, in display order. Key fields:")
		fmt.Println("      - path: chain of thought IDs from the root down")
		fmt.Println("      - depth, index: nesting level and flat-sequence position")
		fmt.Println("      - focus: 'show', 'dim', 'hide', or 'hide-shift' relative to the cursor")
		fmt.Println("      - left_offset: computed horizontal indent in pixels")
		fmt.Println("      - trailing_drop, empty_drop: drop-target eligibility")
		fmt.Println("")
		fmt.Println("  --export-svg FILE / --export-png FILE / --export-text FILE")
		fmt.Println("      Render the visible outline to a file. Focus levels map to opacity.")
		fmt.Println("      Use --width to fix the canvas or line width.")
		fmt.Println("")
		fmt.Println("  --robot-recipes")
		fmt.Println("      Lists all available recipes as JSON.")
		fmt.Println("      Output: {recipes: [{name, description, source}]}")
		fmt.Println("      Sources: 'builtin', 'user' (~/.config/ov/recipes.yaml), 'project' (.ov/recipes.yaml)")
		fmt.Println("")
		fmt.Println("  --recipe NAME, -r NAME")
		fmt.Println("      Apply a named view recipe before rendering.")
		fmt.Println("      Built-in recipes: default, overview, full, presentation, drop-check")
		fmt.Println("")
		fmt.Println("  --save-baseline \"description\"")
		fmt.Println("      Save current shape statistics to .ov/baseline.json.")
		fmt.Println("")
		fmt.Println("  --check-drift")
		fmt.Println("      Compare current statistics against the saved baseline.")
		fmt.Println("      Exit codes for CI integration:")
		fmt.Println("        0 = No critical or warning alerts (info-only OK)")
		fmt.Println("        1 = Critical alerts (large content loss)")
		fmt.Println("        2 = Warning alerts (rapid growth, deep nesting)")
		fmt.Println("      Human-readable output by default, use --robot-drift for JSON.")
		fmt.Println("")
		fmt.Println("  --sync-db")
		fmt.Println("      Import outline.json into the sqlite index at .ov/outline.db.")
		fmt.Println("      Combine with --db on later runs to serve large outlines from disk.")
		fmt.Println("")
		fmt.Println("  --dir PATH")
		fmt.Println("      Use PATH as the document root instead of walking up from cwd.")
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("ov %s\n", version.Version)
		os.Exit(0)
	}

	root, err := resolveRoot(*dir, *pick)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Make sure the directory contains an .ov/ data directory.")
		os.Exit(1)
	}

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config: %v\n", err)
		cfg = config.Config{}
	}

	if *agentsSetup {
		path, changed, err := agents.Setup(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up agent instructions: %v\n", err)
			os.Exit(1)
		}
		if changed {
			fmt.Printf("Agent instructions written to %s\n", path)
		} else {
			fmt.Printf("Agent instructions in %s already up to date\n", path)
		}
		os.Exit(0)
	}

	recipeLoader, err := recipe.LoadDefault(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading recipes: %v\n", err)
		recipeLoader = recipe.NewLoader()
	}

	if *robotRecipes {
		summaries := recipeLoader.ListSummaries()
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].Name < summaries[j].Name
		})
		output := struct {
			Recipes []recipe.Summary `json:"recipes"`
		}{Recipes: summaries}
		encodeJSON(output)
		os.Exit(0)
	}

	var activeRecipe *recipe.Recipe
	if *recipeName != "" {
		activeRecipe = recipeLoader.Get(*recipeName)
		if activeRecipe == nil {
			fmt.Fprintf(os.Stderr, "Error: Unknown recipe '%s'\n\n", *recipeName)
			fmt.Fprintln(os.Stderr, "Available recipes:")
			names := recipeLoader.Names()
			sort.Strings(names)
			for _, name := range names {
				r := recipeLoader.Get(name)
				fmt.Fprintf(os.Stderr, "  %-15s %s\n", name, r.Description)
			}
			os.Exit(1)
		}
	}

	// Handle --sync-db before building any store: it is a pure import.
	if *syncDB {
		thoughts, err := loader.LoadOutline(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading outline: %v\n", err)
			os.Exit(1)
		}
		db, err := store.OpenSQLite(filepath.Join(root, loader.DataDirName, DBFileName), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
			os.Exit(1)
		}
		if err := db.Import(thoughts); err != nil {
			db.Close()
			fmt.Fprintf(os.Stderr, "Error importing outline: %v\n", err)
			os.Exit(1)
		}
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing index: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d thoughts into %s\n", len(thoughts), DBFileName)
		os.Exit(0)
	}

	var st view.Store
	if *useDB {
		db, err := store.OpenSQLite(filepath.Join(root, loader.DataDirName, DBFileName), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		st = db
	} else {
		thoughts, err := loader.LoadOutline(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading outline: %v\n", err)
			fmt.Fprintln(os.Stderr, "Initialize one with an .ov/outline.json file.")
			os.Exit(1)
		}
		st = store.NewMemoryStore(thoughts, nil)
	}

	state := loader.LoadViewState(root)
	if cfg.FontSize > 0 {
		state.FontSize = cfg.FontSize
	}
	if cfg.MaxDistance > 0 {
		state.MaxDistance = cfg.MaxDistance
	}
	state = state.Expand(nil, true)
	state = activeRecipe.Apply(st, state)
	// Explicit flags win over both config and recipe.
	if *fontSize > 0 {
		state.FontSize = *fontSize
	}
	if *maxDistance > 0 {
		state.MaxDistance = *maxDistance
	}
	if *showDrops {
		state.SimulateDrag = true
	}

	baselinePath := drift.DefaultPath(root)

	if *baselineInfo {
		if !drift.Exists(baselinePath) {
			fmt.Println("No baseline found.")
			fmt.Println("Create one with: ov --save-baseline \"description\"")
			os.Exit(0)
		}
		bl, err := drift.Load(baselinePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading baseline: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(bl.Summary())
		os.Exit(0)
	}

	if *saveBaseline != "" {
		bl := drift.New(analysis.Compute(st), *saveBaseline)
		if err := bl.Save(baselinePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving baseline: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Baseline saved to %s\n", baselinePath)
		fmt.Print(bl.Summary())
		os.Exit(0)
	}

	if *checkDrift {
		if !drift.Exists(baselinePath) {
			fmt.Fprintln(os.Stderr, "Error: No baseline found.")
			fmt.Fprintln(os.Stderr, "Create one with: ov --save-baseline \"description\"")
			os.Exit(1)
		}
		bl, err := drift.Load(baselinePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading baseline: %v\n", err)
			os.Exit(1)
		}
		driftConfig, err := drift.LoadConfig(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading drift config: %v\n", err)
			driftConfig = drift.DefaultConfig()
		}

		current := drift.New(analysis.Compute(st), "current")
		result := drift.NewCalculator(bl, current, driftConfig).Calculate()

		if *robotDrift {
			output := struct {
				GeneratedAt string        `json:"generated_at"`
				HasDrift    bool          `json:"has_drift"`
				ExitCode    int           `json:"exit_code"`
				Alerts      []drift.Alert `json:"alerts"`
				Baseline    struct {
					CreatedAt   string `json:"created_at"`
					Description string `json:"description,omitempty"`
				} `json:"baseline"`
			}{
				GeneratedAt: time.Now().UTC().Format(time.RFC3339),
				HasDrift:    result.HasDrift,
				ExitCode:    result.ExitCode(),
				Alerts:      result.Alerts,
			}
			output.Baseline.CreatedAt = bl.CreatedAt.Format(time.RFC3339)
			output.Baseline.Description = bl.Description
			encodeJSON(output)
		} else {
			fmt.Print(result.Summary())
		}
		os.Exit(result.ExitCode())
	}

	if *robotStats {
		stats := analysis.Compute(st)
		output := struct {
			GeneratedAt string         `json:"generated_at"`
			Document    string         `json:"document"`
			Stats       analysis.Stats `json:"stats"`
		}{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Document:    filepath.Base(root),
			Stats:       stats,
		}
		encodeJSON(output)
		os.Exit(0)
	}

	if *robotOutline {
		pos := view.Compute(st, state)
		output := struct {
			GeneratedAt string       `json:"generated_at"`
			Document    string       `json:"document"`
			RootDrop    bool         `json:"root_drop"`
			Rows        []outlineRow `json:"rows"`
		}{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Document:    filepath.Base(root),
			RootDrop:    pos.RootDrop,
			Rows:        buildOutlineRows(pos),
		}
		encodeJSON(output)
		os.Exit(0)
	}

	if *exportSVG != "" || *exportPNG != "" || *exportText != "" {
		runExports(st, state, root, *exportSVG, *exportPNG, *exportText, *width)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal.")
		fmt.Fprintln(os.Stderr, "Use --export-text - for plain output, or --robot-outline for JSON.")
		os.Exit(1)
	}

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	m := ui.NewOutlineModel(st, state, theme, filepath.Base(root))
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Live reload only applies to the JSON-backed store: the sqlite index is
	// already the source of truth in --db mode.
	if !*noWatch && !*useDB {
		w, err := watcher.New(loader.OutlinePath(root), watcher.DefaultDebounce, func() {
			thoughts, err := loader.LoadOutline(root)
			if err != nil {
				return // mid-write reads resolve on the next debounce
			}
			p.Send(ui.ReloadMsg{Store: store.NewMemoryStore(thoughts, nil)})
		})
		if err == nil {
			if err := w.Start(); err == nil {
				defer w.Stop()
			}
		}
	}

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running outline viewer: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(ui.OutlineModel); ok {
		if err := loader.SaveViewState(root, fm.State()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save view state: %v\n", err)
		}
	}
}

// resolveRoot picks the document root: an explicit --dir, an interactive
// --pick, or a walk up from the working directory.
func resolveRoot(dir string, pick bool) (string, error) {
	if pick {
		return pickDocument()
	}
	if dir != "" {
		info, err := os.Stat(filepath.Join(dir, loader.DataDirName))
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("no %s directory under %s", loader.DataDirName, dir)
		}
		return dir, nil
	}
	root, ok := loader.DetectOutlineRoot()
	if !ok {
		return "", fmt.Errorf("no outline found in this directory or any parent")
	}
	return root, nil
}

// pickDocument shows an interactive picker over the registered and
// discovered documents of the nearest config.
func pickDocument() (string, error) {
	cfgRoot, ok := loader.DetectOutlineRoot()
	if !ok {
		cfgRoot, _ = os.Getwd()
	}
	cfg, err := config.Load(cfgRoot)
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}

	docs := config.DiscoverDocuments(cfg)
	if len(docs) == 0 {
		return "", fmt.Errorf("no documents registered or discovered; add some to .ov/config.yaml")
	}
	if len(docs) == 1 {
		return docs[0].ResolvedPath(), nil
	}
	if agents.SuppressTTYQueries(os.Args) {
		return "", fmt.Errorf("interactive picker unavailable in robot mode; use --dir")
	}

	options := make([]huh.Option[string], len(docs))
	for i, d := range docs {
		options[i] = huh.NewOption(d.DisplayName(), d.ResolvedPath())
	}

	var choice string
	sel := huh.NewSelect[string]().
		Title("Open outline").
		Options(options...).
		Value(&choice)
	if err := sel.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// runExports renders the current view to every requested target.
func runExports(st view.Store, state view.ViewState, root, svgFile, pngFile, textFile string, width int) {
	pos := view.Compute(st, state)
	opts := export.Options{
		Title:    filepath.Base(root),
		FontSize: state.FontSize,
		Width:    width,
	}

	if svgFile != "" {
		exportTo(svgFile, func(f *os.File) error { return export.WriteSVG(f, pos, opts) })
		fmt.Printf("Exported SVG to %s\n", svgFile)
	}
	if pngFile != "" {
		exportTo(pngFile, func(f *os.File) error { return export.WritePNG(f, pos, opts) })
		fmt.Printf("Exported PNG to %s\n", pngFile)
	}
	if textFile != "" {
		w := textWidth(width)
		if textFile == "-" {
			if err := export.WriteText(os.Stdout, pos, w); err != nil {
				fmt.Fprintf(os.Stderr, "Error exporting text: %v\n", err)
				os.Exit(1)
			}
			return
		}
		exportTo(textFile, func(f *os.File) error { return export.WriteText(f, pos, w) })
		fmt.Printf("Exported text to %s\n", textFile)
	}
}

func exportTo(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting to %s: %v\n", path, err)
		os.Exit(1)
	}
}

// textWidth picks the line width for text export: the explicit flag wins,
// then the terminal width, then a fixed fallback.
func textWidth(width int) int {
	if width > 0 {
		return width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}

// outlineRow is the JSON shape of one visible row for --robot-outline.
type outlineRow struct {
	ID           string   `json:"id"`
	Value        string   `json:"value"`
	Path         []string `json:"path"`
	Depth        int      `json:"depth"`
	Index        int      `json:"index"`
	IsLeaf       bool     `json:"is_leaf"`
	HasNote      bool     `json:"has_note,omitempty"`
	Focus        string   `json:"focus"`
	LeftOffset   float64  `json:"left_offset"`
	TrailingDrop bool     `json:"trailing_drop,omitempty"`
	EmptyDrop    bool     `json:"empty_drop,omitempty"`
}

// buildOutlineRows converts a positioned sequence into its JSON shape.
func buildOutlineRows(pos view.Positioned) []outlineRow {
	rows := make([]outlineRow, len(pos.Rows))
	for i, r := range pos.Rows {
		path := make([]string, len(r.Path))
		for j, id := range r.Path {
			path[j] = string(id)
		}
		rows[i] = outlineRow{
			ID:           string(r.Thought.ID),
			Value:        r.Thought.Value,
			Path:         path,
			Depth:        r.Depth,
			Index:        r.IndexInSequence,
			IsLeaf:       r.IsLeaf,
			HasNote:      r.Thought.Note != "",
			Focus:        r.Focus.String(),
			LeftOffset:   r.LeftOffset,
			TrailingDrop: r.TrailingDrop,
			EmptyDrop:    r.EmptyDrop,
		}
	}
	return rows
}

func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
