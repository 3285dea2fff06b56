package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ngbuild/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ngbuild build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			colorMode, _ := cmd.Flags().GetString("color")
			renderVersionPretty(cmd.OutOrStdout(), colorEnabled(colorMode, os.Stdout))
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, colorize bool) {
	fmt.Fprintf(out, "ngbuild %s\n", version.Pretty(colorize))
	if version.GitCommit != "" {
		fmt.Fprintf(out, "commit: %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", version.BuildDate)
	}
}

func renderVersionJSON(out io.Writer) error {
	payload := versionPayload{
		Tool:      "ngbuild",
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
