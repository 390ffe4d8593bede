package driver

import (
	"context"
	"fmt"
	"time"

	"fwlint/internal/diag"
	"fwlint/internal/observ"
	"fwlint/internal/parser"
	"fwlint/internal/rules"
	"fwlint/internal/source"
	"fwlint/internal/trace"
)

// Check loads, parses and checks a single file. Load failures are returned as
// errors; everything found in the file is reported through the result.
func Check(ctx context.Context, path string, opts Options) (*Result, error) {
	selected, err := opts.selectRules()
	if err != nil {
		return nil, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	fs := source.NewFileSetWithBase(opts.BaseDir)
	timer := observ.NewTimer()

	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", span.ID())
	idx := timer.Begin("load")
	id, err := fs.Load(path)
	timer.End(idx, "")
	loadSpan.End("")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	fr := checkLoaded(ctx, fs, id, selected, opts, timer)
	return &Result{FileSet: fs, Files: []FileResult{fr}}, nil
}

// CheckSource checks content that did not come from disk (stdin, editors).
func CheckSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	selected, err := opts.selectRules()
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSetWithBase(opts.BaseDir)
	id := fs.AddVirtual(name, content)
	fr := checkLoaded(ctx, fs, id, selected, opts, observ.NewTimer())
	return &Result{FileSet: fs, Files: []FileResult{fr}}, nil
}

// checkLoaded parses a loaded file and runs the rules. With a cache the full
// catalogue runs so that one entry serves any rule selection; rules do not
// depend on each other, so filtering afterwards gives the same result.
func checkLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, selected []rules.Rule, opts Options, timer *observ.Timer) FileResult {
	file := fs.Get(id)
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: fileSpan.ID()})
	started := time.Now()

	fr := FileResult{
		Path:   file.Path,
		FileID: id,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
		Timer:  timer,
	}

	var raw []diag.Diagnostic
	key := CacheKey(file)
	if opts.Cache != nil {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache.error", err.Error(), fileSpan.ID())
		}
		if ok && payload.ContentHash == file.Hash {
			raw = fromDiskPayload(&payload, id)
			fr.Cached = true
		}
	}

	if !fr.Cached {
		emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
		idx := timer.Begin("parse")
		parsed := parser.ParseFile(ctx, fs, id, parser.Options{})
		timer.End(idx, fmt.Sprintf("%d nodes", parsed.Nodes))
		fr.Tree = parsed.Tree
		raw = append(raw, parsed.Bag.Items()...)

		toRun := selected
		if opts.Cache != nil {
			toRun = rules.Catalogue()
		}
		emit(opts.Progress, Event{File: file.Path, Stage: StageRules, Status: StatusWorking})
		idx = timer.Begin("rules")
		src := string(file.Content)
		var found []diag.Diagnostic
		if opts.ParallelRules {
			found = rules.RunParallel(ctx, toRun, src, parsed.Tree.Root, opts.RuleJobs)
		} else {
			found = rules.RunContext(ctx, toRun, src, parsed.Tree.Root)
		}
		timer.End(idx, fmt.Sprintf("%d rules, %d diagnostics", len(toRun), len(found)))
		raw = append(raw, found...)

		if opts.Cache != nil {
			if err := opts.Cache.Put(key, toDiskPayload(file, raw)); err != nil {
				trace.Point(tracer, trace.ScopeFile, "cache.error", err.Error(), fileSpan.ID())
			}
		}
	}

	fr.Bag.AddAll(opts.finalize(raw, selected))

	if opts.Timings {
		report := timer.Report()
		appendTimingDiagnostic(fr.Bag, id, timingPayload{
			Path:    file.Path,
			Cached:  fr.Cached,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	status := StatusDone
	if fr.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageRules, Status: status, Elapsed: time.Since(started)})
	fileSpan.End(fmt.Sprintf("%d diagnostics", fr.Bag.Len()))
	return fr
}
