package buildpipeline

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ngbuild/internal/buildcache"
	"ngbuild/internal/buildlog"
	"ngbuild/internal/diag"
	"ngbuild/internal/element"
	"ngbuild/internal/observ"
	"ngbuild/internal/source"
)

// SourceExt is the extension of component template sources.
const SourceExt = ".cmp"

// Options configures a build run.
type Options struct {
	// Jobs bounds per-file parallelism. Defaults to GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each file's diagnostic bag.
	MaxDiagnostics int
	// KnownAnnotations lists the annotation names the analyzer resolves.
	KnownAnnotations []string
	// FailFast raises the first unresolved annotation as an error through
	// the boundary instead of collecting every finding.
	FailFast bool
	// Cache, when set, skips re-scanning files whose content digest hits.
	Cache *buildcache.Cache
	// Progress receives per-file stage events. Nil means no reporting.
	Progress ProgressSink
}

// FileResult holds the outcome for one source file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Annotations []element.Annotation
	Bag         *diag.Bag
	CacheHit    bool
	// Resolved is false when the file's build step failed and was logged
	// through the error boundary.
	Resolved bool
}

// Result is the outcome of a whole build.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// HasSevere reports whether any file produced a severe diagnostic or failed
// its build step.
func (r *Result) HasSevere() bool {
	if r == nil {
		return false
	}
	if r.Bag.HasSevere() {
		return true
	}
	for _, f := range r.Files {
		if !f.Resolved {
			return true
		}
	}
	return false
}

// Build runs the scan and analyze stages over every component source under
// dir. Each per-file step executes inside the build error boundary: a file
// that fails is logged once at severe level and the build itself always
// resolves with a Result.
func Build(ctx context.Context, log *buildlog.Logger, dir string, opts Options) (*Result, error) {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	progress := opts.Progress
	if progress == nil {
		progress = NopSink{}
	}
	known := make(map[string]bool, len(opts.KnownAnnotations))
	for _, name := range opts.KnownAnnotations {
		known[name] = true
	}

	timer := observ.NewTimer()

	// Discovery and loading are sequential: FileSet is not safe for
	// concurrent mutation.
	loadIdx := timer.Begin(string(StageScan))
	files, err := listSources(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources under %q: %w", dir, err)
	}
	fileSet := source.NewFileSetWithBase(dir)

	result := &Result{
		FileSet: fileSet,
		Files:   make([]FileResult, 0, len(files)),
		Bag:     diag.NewBag(opts.MaxDiagnostics * (len(files) + 1)),
		Timer:   timer,
	}

	for _, path := range files {
		progress.OnEvent(Event{File: path, Stage: StageScan, Status: StatusQueued})
		id, loadErr := fileSet.Load(path)
		fr := FileResult{
			Path:     path,
			FileID:   id,
			Bag:      diag.NewBag(opts.MaxDiagnostics),
			Resolved: true,
		}
		if loadErr != nil {
			fr.Resolved = false
			fr.FileID = source.NoFile
			log.Severe(buildlog.NewBuildError(fmt.Sprintf("failed to read %s: %v", path, loadErr)))
			fr.Bag.Add(diag.NewSevere(diag.IOReadFailed, source.NoSpan(), fmt.Sprintf("failed to read %s: %v", path, loadErr)))
			progress.OnEvent(Event{File: path, Stage: StageScan, Status: StatusError})
		}
		result.Files = append(result.Files, fr)
	}
	timer.End(loadIdx, fmt.Sprintf("%d files", len(files)))

	analyzeIdx := timer.Begin(string(StageAnalyze))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for i := range result.Files {
		fr := &result.Files[i]
		if !fr.Resolved {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			progress.OnEvent(Event{File: fr.Path, Stage: StageAnalyze, Status: StatusWorking})

			ok := buildlog.RunVoid(gctx, log, func(ctx context.Context) error {
				return analyzeFile(ctx, log, fileSet, fr, known, opts)
			})
			fr.Resolved = ok

			status := StatusDone
			if !ok || fr.Bag.HasSevere() {
				status = StatusError
			}
			progress.OnEvent(Event{File: fr.Path, Stage: StageAnalyze, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	// Worker failures never surface here: the boundary swallows them.
	// Wait can only report context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	timer.End(analyzeIdx, "")

	emitIdx := timer.Begin(string(StageEmit))
	for i := range result.Files {
		fr := &result.Files[i]
		if !fr.Resolved && fr.Bag.Len() == 0 {
			fr.Bag.Add(diag.NewSevere(diag.BuildStepFailed, source.NoSpan(),
				fmt.Sprintf("build step for %s did not complete", fr.Path)))
		}
		result.Bag.Merge(fr.Bag)
	}
	result.Bag.Sort()
	result.Bag.Dedup()
	timer.End(emitIdx, fmt.Sprintf("%d diagnostics", result.Bag.Len()))
	progress.OnEvent(Event{Stage: StageEmit, Status: StatusDone})

	return result, nil
}

// analyzeFile indexes annotations (or restores them from cache) and checks
// each against the known set.
func analyzeFile(ctx context.Context, log *buildlog.Logger, fileSet *source.FileSet, fr *FileResult, known map[string]bool, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := fileSet.Get(fr.FileID)

	if cached, ok := opts.Cache.Get(f.Hash); ok {
		fr.Annotations = buildcache.DecodeAnnotations(cached.Annotations, fr.FileID)
		fr.CacheHit = true
		log.Finef("cache hit for %s", fr.Path)
	} else {
		fr.Annotations = element.Scan(f)
		if opts.Cache != nil {
			if err := opts.Cache.Put(f.Hash, &buildcache.Payload{
				Path:        fr.Path,
				Annotations: buildcache.EncodeAnnotations(fr.Annotations),
			}); err != nil {
				log.Warningf("failed to cache scan of %s: %v", fr.Path, err)
			}
		}
	}
	log.Finef("%s: %d annotations", fr.Path, len(fr.Annotations))

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: fr.Bag})
	for _, ann := range fr.Annotations {
		if known[ann.Name()] {
			continue
		}
		unresolved := buildlog.UnresolvedAnnotation(log, fileSet, ann)
		if opts.FailFast {
			return unresolved
		}
		diag.ReportSevere(reporter, diag.AnnUnresolved, unresolved.Span, unresolved.Error()).Emit()
	}
	return nil
}

// listSources returns the sorted list of component sources under dir.
func listSources(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
