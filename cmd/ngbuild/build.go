package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ngbuild/internal/buildcache"
	"ngbuild/internal/buildpipeline"
	"ngbuild/internal/diag"
	"ngbuild/internal/diagfmt"
)

var (
	buildFailFast   bool
	buildNoCache    bool
	buildJobs       int
	buildLogLevel   string
	buildShowTraces bool
	buildFormat     string
)

func init() {
	buildCmd.Flags().BoolVar(&buildFailFast, "fail-fast", false, "stop a file at its first unresolved annotation")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "ignore the scan cache")
	buildCmd.Flags().IntVar(&buildJobs, "jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	buildCmd.Flags().StringVar(&buildLogLevel, "log-level", "", "minimum log level (fine|info|warning|severe)")
	buildCmd.Flags().BoolVar(&buildShowTraces, "show-internal-traces", false, "append stack traces to severe log entries")
	buildCmd.Flags().StringVar(&buildFormat, "format", "pretty", "diagnostic output format (pretty|short|json)")
}

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Scan component sources and report build diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startDir := "."
		if len(args) == 1 {
			startDir = args[0]
		}

		manifest, found, err := loadManifest(startDir)
		if err != nil {
			return err
		}
		if !found && len(args) == 0 {
			return fmt.Errorf("%s", noManifestMessage)
		}

		dir := startDir
		known := defaultAnnotations
		jobs := buildJobs
		useCache := !buildNoCache
		showTraces := buildShowTraces
		level := diag.SevInfo
		if manifest != nil {
			if len(args) == 0 {
				dir = manifest.sourceDir()
			}
			known = manifest.Config.Package.Annotations
			if jobs == 0 {
				jobs = manifest.Config.Build.Jobs
			}
			useCache = useCache && manifest.Config.Build.Cache
			showTraces = showTraces || manifest.Config.Build.ShowInternalTraces
			if sev, ok := diag.ParseSeverity(manifest.Config.Build.LogLevel); ok {
				level = sev
			}
		}
		if buildLogLevel != "" {
			sev, ok := diag.ParseSeverity(buildLogLevel)
			if !ok {
				return fmt.Errorf("invalid log level %q (expected: fine|info|warning|severe)", buildLogLevel)
			}
			level = sev
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			level = diag.SevWarning
		}

		colorMode, _ := cmd.Flags().GetString("color")
		colorize := colorEnabled(colorMode, os.Stderr)

		log, flush, err := newBuildLogger(level, showTraces, colorize)
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		defer flush()

		var cache *buildcache.Cache
		if useCache {
			cache, err = buildcache.Open("ngbuild")
			if err != nil {
				log.Warningf("scan cache unavailable: %v", err)
				cache = nil
			}
		}

		maxDiagnostics, _ := cmd.Flags().GetInt("max-diagnostics")
		result, err := buildpipeline.Build(cmd.Context(), log, dir, buildpipeline.Options{
			Jobs:             jobs,
			MaxDiagnostics:   maxDiagnostics,
			KnownAnnotations: known,
			FailFast:         buildFailFast,
			Cache:            cache,
		})
		if err != nil {
			return err
		}

		switch buildFormat {
		case "pretty":
			renderer := &diagfmt.Renderer{Colorize: colorEnabled(colorMode, os.Stdout)}
			if err := renderer.RenderAll(cmd.OutOrStdout(), result.FileSet, result.Bag.Items()); err != nil {
				return err
			}
		case "short":
			if out := diag.FormatShort(result.Bag.Items(), result.FileSet, true); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
		case "json":
			if err := diagfmt.JSON(cmd.OutOrStdout(), result.FileSet, result.Bag.Items()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, short or json)", buildFormat)
		}

		if timings, _ := cmd.Flags().GetBool("timings"); timings {
			fmt.Fprint(cmd.ErrOrStderr(), result.Timer.Summary())
		}

		if result.HasSevere() {
			// The build itself resolved; the non-zero exit only reflects
			// the diagnostics.
			return fmt.Errorf("build completed with severe diagnostics (%d total)", result.Bag.Len())
		}
		log.Infof("build completed: %d files, %d diagnostics", len(result.Files), result.Bag.Len())
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop the scan cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := buildcache.Open("ngbuild")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "scan cache dropped")
		return nil
	},
}
