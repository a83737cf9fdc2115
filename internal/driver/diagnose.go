package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/observ"
	"pinecheck/internal/sema"
	"pinecheck/internal/source"
	"pinecheck/internal/trace"
)

type DiagnoseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *cst.Tree    // nil, если результат взят из кэша
	Sema    *sema.Result // nil, если результат взят из кэша
	Bag     *diag.Bag
	Timing  *observ.Report
	Cached  bool
}

// Diagnose loads path and runs lexing, parsing and semantic analysis on it.
// Only I/O failures are returned as errors.
func Diagnose(ctx context.Context, path string, opts Options) (*DiagnoseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	an := sema.New(opts.corpus(), sema.Options{MaxDiagnostics: opts.maxDiagnostics()})
	return DiagnoseFile(ctx, fs, fileID, an, opts), nil
}

// DiagnoseFile analyzes a file that is already in fs with the given analyzer.
// The analyzer is reset by the call, so one analyzer may serve many calls
// as long as they do not overlap.
func DiagnoseFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, an *sema.Analyzer, opts Options) *DiagnoseResult {
	tracer := trace.FromContext(ctx)
	file := fs.Get(fileID)
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose_file", trace.SpanFromContext(ctx)).
		WithExtra("path", file.Path)
	ctx = trace.WithSpan(ctx, span.ID())

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	maxDiagnostics := opts.maxDiagnostics()
	res := &DiagnoseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(maxDiagnostics),
	}

	key := CacheKey(file, an.Corpus(), maxDiagnostics)
	if opts.Cache != nil {
		var payload DiskPayload
		idx := timer.Begin("cache_lookup")
		found, err := opts.Cache.Get(key, &payload)
		timer.End(idx, "")
		if err != nil {
			trace.Point(tracer, trace.ScopeDriver, "cache_error", err.Error(), span.ID())
		}
		if found && payload.ContentHash == file.Hash {
			payload.restore(res.Bag, file)
			res.Cached = true
		}
	}

	if !res.Cached {
		start := time.Now()
		emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
		idx := timer.Begin("parse")
		tree, err := parseFile(file, res.Bag, maxDiagnostics)
		if err != nil {
			// лимит не помещается в uint - парсим без ограничения сообщений
			tree, _ = parseFile(file, res.Bag, 0)
		}
		timer.End(idx, strconv.Itoa(tree.Len())+" nodes")
		res.Tree = tree

		emit(opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusWorking, Elapsed: time.Since(start)})
		idx = timer.Begin("analyze")
		semaRes := an.Analyze(ctx, tree)
		timer.End(idx, strconv.Itoa(len(semaRes.Diagnostics))+" diagnostics")
		res.Sema = &semaRes

		for _, d := range semaRes.Diagnostics {
			res.Bag.Add(d)
		}
		res.Bag.AddDropped(semaRes.Dropped)

		if opts.Cache != nil {
			payload := &DiskPayload{
				Path:         file.Path,
				ContentHash:  file.Hash,
				CorpusDigest: an.Corpus().Digest(),
				Diagnostics:  append([]diag.Diagnostic(nil), res.Bag.Items()...),
				Dropped:      res.Bag.Dropped(),
			}
			if err := opts.Cache.Put(key, payload); err != nil {
				trace.Point(tracer, trace.ScopeDriver, "cache_error", err.Error(), span.ID())
			}
		}
	} else {
		emit(opts.Progress, Event{File: file.Path, Stage: StageCacheHit, Status: StatusWorking})
	}

	applyFilters(res.Bag, opts)
	res.Bag.Sort()

	if timer != nil {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		}, fileID)
	}

	span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End("")
	return res
}

// applyFilters drops or promotes warnings according to opts.
func applyFilters(bag *diag.Bag, opts Options) {
	if opts.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
}
