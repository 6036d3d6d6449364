package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tspatch/pkg/tspkg"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the persisted patch config for the resolved package",
		RunE:  runStatus,
	}
	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	pkg, err := resolvePackage(cmd, cfg)
	if err != nil {
		return err
	}

	if outputJSON {
		return writeStatusJSON(cmd, pkg)
	}

	writeStatusTable(cmd, pkg)
	return nil
}

func writeStatusTable(cmd *cobra.Command, pkg *tspkg.Package) {
	pc := pkg.Config
	fmt.Fprintf(cmd.OutOrStdout(), "Package: %s v%s\n", pkg.PackageDir, pkg.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Config:  %s (tool v%s, persist=%v)\n\n", pc.File(), pc.Version(), pc.Persist)

	if len(pc.Modules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No patched modules recorded.")
		return
	}

	names := make([]string, 0, len(pc.Modules))
	for name := range pc.Modules {
		names = append(names, name)
	}
	sort.Strings(names)

	// The marker encoding is owned by the patch tool; render it untouched.
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tMARKER")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\n", name, pc.Modules[name])
	}
	w.Flush()
}

func writeStatusJSON(cmd *cobra.Command, pkg *tspkg.Package) error {
	pc := pkg.Config
	payload := struct {
		Package string           `json:"package"`
		Version string           `json:"version"`
		File    string           `json:"file"`
		Tool    string           `json:"tool_version"`
		Persist bool             `json:"persist"`
		Modules map[string]int64 `json:"modules"`
	}{
		Package: pkg.PackageDir,
		Version: pkg.Version,
		File:    pc.File(),
		Tool:    pc.Version(),
		Persist: pc.Persist,
		Modules: pc.Modules,
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode status json: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
