package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"fwlint/internal/diag"
	"fwlint/internal/observ"
	"fwlint/internal/source"
	"fwlint/internal/trace"
)

// ListJSFiles returns every *.js file under dir, sorted. node_modules and
// hidden directories are skipped.
func ListJSFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".js") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.js file under dir in parallel. A file that cannot be
// read gets an IO4001 diagnostic instead of aborting the run. Results are in
// the order of ListJSFiles.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	selected, err := opts.selectRules()
	if err != nil {
		return nil, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check-dir", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	files, err := ListJSFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	base := opts.BaseDir
	if base == "" {
		base = dir
	}
	fileSet := source.NewFileSetWithBase(base)
	if len(files) == 0 {
		return &Result{FileSet: fileSet}, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: загружаем всё до запуска горутин
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	loadTimes := make(map[string]*observ.Timer, len(files))
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", span.ID())
	for _, path := range files {
		timer := observ.NewTimer()
		idx := timer.Begin("load")
		fileID, err := fileSet.Load(path)
		timer.End(idx, "")
		loadTimes[path] = timer
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было куда указывать
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}
	loadSpan.End(fmt.Sprintf("%d files, %d failed", len(files), len(loadErrors)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Line:     1,
					Primary:  source.Span{File: fileIDs[path]},
				})
				results[i] = FileResult{Path: path, FileID: fileIDs[path], Bag: bag, Timer: loadTimes[path]}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			results[i] = checkLoaded(gctx, fileSet, fileIDs[path], selected, opts, loadTimes[path])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &Result{FileSet: fileSet, Files: compactResults(results)}, err
	}
	emit(opts.Progress, Event{Stage: StageRules, Status: StatusDone})
	return &Result{FileSet: fileSet, Files: results}, nil
}

// compactResults drops slots of files that never ran (cancelled run).
func compactResults(results []FileResult) []FileResult {
	out := results[:0]
	for _, r := range results {
		if r.Bag != nil {
			out = append(out, r)
		}
	}
	return out
}
