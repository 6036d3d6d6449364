package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tspatch/pkg/patchcfg"
)

var (
	baseDir    string
	globalPkg  bool
	outputJSON bool
	noColor    bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tspatch",
		Short:   "Inspect the installed typescript package and its patch state",
		Version: patchcfg.ToolVersion,
	}

	cmd.PersistentFlags().StringVar(&baseDir, "basedir", "", "Directory to resolve the typescript package from")
	cmd.PersistentFlags().BoolVar(&globalPkg, "global", false, "Resolve the globally installed typescript package")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}
