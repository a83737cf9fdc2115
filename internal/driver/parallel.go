package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pinecheck/internal/diag"
	"pinecheck/internal/observ"
	"pinecheck/internal/sema"
	"pinecheck/internal/source"
	"pinecheck/internal/trace"
)

// DiagnoseDirResult содержит результат анализа одного файла каталога
type DiagnoseDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в общем FileSet
	Bag    *diag.Bag
	Timing *observ.Report
	Cached bool
}

// ListFiles returns the sorted, de-duplicated list of files under roots whose
// extension is in exts. A root that is a regular file is returned as is.
func ListFiles(roots []string, exts []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// скрытые каталоги (.git, .cache) пропускаем, сам корень - нет
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if path == root || slices.Contains(exts, filepath.Ext(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir analyzes every matching file under roots in parallel, one
// analyzer per file. The returned error is non-nil only when listing fails
// or ctx is cancelled; unreadable files become IO diagnostics.
func DiagnoseDir(ctx context.Context, roots []string, opts Options) (*source.FileSet, []DiagnoseDirResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose_dir", trace.SpanFromContext(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span.ID())

	files, err := ListFiles(roots, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	base := ""
	if len(roots) == 1 {
		base = roots[0]
	}
	fileSet := source.NewFileSetWithBase(base)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	// FileSet не потокобезопасен на запись: загружаем всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было к чему привязаться
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	corpus := opts.corpus()
	maxDiagnostics := opts.maxDiagnostics()

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]DiagnoseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(maxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: fileIDs[path]},
					Source:   diag.SourceTag,
				})
				results[i] = DiagnoseDirResult{Path: path, FileID: fileIDs[path], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start), Errors: 1})
				return nil
			}

			an := sema.New(corpus, sema.Options{MaxDiagnostics: maxDiagnostics})
			res := DiagnoseFile(gctx, fileSet, fileIDs[path], an, opts)
			results[i] = DiagnoseDirResult{
				Path:   path,
				FileID: res.File.ID,
				Bag:    res.Bag,
				Timing: res.Timing,
				Cached: res.Cached,
			}
			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			stage := StageAnalyze
			if res.Cached {
				stage = StageCacheHit
			}
			emit(opts.Progress, Event{
				File:     path,
				Stage:    stage,
				Status:   status,
				Elapsed:  time.Since(start),
				Errors:   res.Bag.Count(diag.SevError),
				Warnings: res.Bag.Count(diag.SevWarning),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeResults collects the diagnostics of all files into one sorted bag.
func MergeResults(results []DiagnoseDirResult) *diag.Bag {
	total := 0
	for _, r := range results {
		if r.Bag != nil {
			total += r.Bag.Len()
		}
	}
	out := diag.NewBag(max(total, 1))
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		out.Merge(r.Bag)
		out.AddDropped(r.Bag.Dropped())
	}
	out.Sort()
	return out
}
