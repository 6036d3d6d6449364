package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tspatch/internal/config"
	"tspatch/internal/logx"
	"tspatch/pkg/fspath"
	"tspatch/pkg/inspect"
	"tspatch/pkg/patchcfg"
	"tspatch/pkg/tspkg"
)

var checkStrict bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check which compiler modules are patchable and patched",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when modules are unpatched, outdated, or missing")

	return cmd
}

// moduleStatus is the per-module check result.
type moduleStatus struct {
	Module       string `json:"module"`
	File         string `json:"file"`
	CanPatch     bool   `json:"can_patch"`
	Patched      bool   `json:"patched"`
	PatchVersion string `json:"patch_version,omitempty"`
	Outdated     bool   `json:"outdated,omitempty"`
	Recorded     bool   `json:"recorded"`
	Error        string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer, err := logx.New("")
	if err != nil {
		return err
	}
	defer closer.Close()

	pkg, err := resolvePackage(cmd, cfg)
	if err != nil {
		return err
	}
	logger.Printf("tspatch check: package=%s version=%s", pkg.PackageDir, pkg.Version)

	statuses := make([]moduleStatus, 0, len(cfg.Modules))
	for _, name := range cfg.Modules {
		st := checkModule(name, pkg)
		logger.Printf("module %s: canPatch=%v patched=%v version=%s error=%s",
			st.Module, st.CanPatch, st.Patched, st.PatchVersion, st.Error)
		statuses = append(statuses, st)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Module < statuses[j].Module })

	// The strict verdict must not suppress the report itself; emit the
	// payload first so failing runs still carry the per-module detail.
	var strictErr error
	if checkStrict {
		strictErr = ensureStrict(statuses)
	}

	payload := struct {
		Package string         `json:"package"`
		Version string         `json:"version"`
		Modules []moduleStatus `json:"modules"`
	}{
		Package: pkg.PackageDir,
		Version: pkg.Version,
		Modules: statuses,
	}

	if outputJSON {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return strictErr
	}

	printCheckResult(cmd, cfg, pkg, statuses)
	return strictErr
}

func checkModule(name string, pkg *tspkg.Package) moduleStatus {
	file := fspath.ModuleAbsolutePath(name, pkg.LibDir)
	st := moduleStatus{Module: filepath.Base(file), File: file}
	_, st.Recorded = pkg.Config.Modules[st.Module]

	mod, err := inspect.Inspect(file, false)
	if err != nil {
		st.Error = err.Error()
		return st
	}

	st.CanPatch = mod.CanPatch
	st.Patched = mod.Patched()
	st.PatchVersion = mod.PatchVersion
	if st.Patched && tspkg.CompareVersions(mod.PatchVersion, patchcfg.ToolVersion) < 0 {
		st.Outdated = true
	}
	return st
}

// loadSettings reads the optional tspatch.yaml next to the base directory
// (flag value first, settings value as fallback).
func loadSettings() (config.Config, error) {
	dir := baseDir
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return config.Config{}, err
	}
	if baseDir == "" && cfg.BaseDir != "" {
		baseDir = cfg.BaseDir
	}
	return cfg, nil
}

// resolvePackage locates the target package, routing the tolerated
// config-load diagnostics to the command's stderr.
func resolvePackage(cmd *cobra.Command, cfg config.Config) (*tspkg.Package, error) {
	opts := tspkg.ResolveOptions{Logger: log.New(cmd.ErrOrStderr(), "", 0)}
	if globalPkg || cfg.Global {
		return tspkg.ResolveGlobal(cmd.Context(), opts)
	}
	return tspkg.Resolve(baseDir, opts)
}

func printCheckResult(cmd *cobra.Command, cfg config.Config, pkg *tspkg.Package, statuses []moduleStatus) {
	styles := newStyles(cfg.ColorValue() && !noColor)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, styles.bold.Render("Package:")+" "+pkg.PackageDir+" v"+pkg.Version)
	fmt.Fprintln(out)

	for _, st := range statuses {
		switch {
		case st.Error != "":
			fmt.Fprintln(out, styles.red.Render("✗")+" "+styles.bold.Render(st.Module))
			fmt.Fprintln(out, styles.faint.Render("  "+st.Error))
		case !st.CanPatch:
			fmt.Fprintln(out, styles.yellow.Render("–")+" "+styles.bold.Render(st.Module))
			fmt.Fprintln(out, styles.faint.Render("  not a patchable module"))
		case st.Outdated:
			fmt.Fprintln(out, styles.yellow.Render("!")+" "+styles.bold.Render(st.Module)+
				" patched v"+st.PatchVersion+styles.faint.Render(" (current: "+patchcfg.ToolVersion+")"))
		case st.Patched:
			fmt.Fprintln(out, styles.green.Render("✓")+" "+styles.bold.Render(st.Module)+" patched v"+st.PatchVersion)
		default:
			fmt.Fprintln(out, styles.yellow.Render("○")+" "+styles.bold.Render(st.Module))
			fmt.Fprintln(out, styles.faint.Render("  patchable, not patched"))
		}
	}
	fmt.Fprintln(out)
}

func ensureStrict(statuses []moduleStatus) error {
	var failures []string
	for _, st := range statuses {
		switch {
		case st.Error != "":
			failures = append(failures, fmt.Sprintf("%s (%s)", st.Module, st.Error))
		case st.CanPatch && !st.Patched:
			failures = append(failures, st.Module+" (unpatched)")
		case st.Outdated:
			failures = append(failures, st.Module+" (outdated)")
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("module check failed: " + strings.Join(failures, ", "))
}

type styleSet struct {
	bold, green, red, yellow, faint lipgloss.Style
}

func newStyles(color bool) styleSet {
	if !color {
		plain := lipgloss.NewStyle()
		return styleSet{bold: plain, green: plain, red: plain, yellow: plain, faint: plain}
	}
	return styleSet{
		bold:   lipgloss.NewStyle().Bold(true),
		green:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		red:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		faint:  lipgloss.NewStyle().Faint(true),
	}
}
