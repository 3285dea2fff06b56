package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ngbuild/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "ngbuild",
	Short:         "Annotation-driven template compiler build driver",
	Long:          `ngbuild scans component sources, resolves their annotations and reports build diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ngbuild: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color mode against the actual output.
func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f)
	}
}
