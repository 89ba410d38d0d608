package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"risp/internal/ast"
	"risp/internal/diag"
	"risp/internal/project"
	"risp/internal/source"
	"risp/internal/trace"
)

// DirOptions configures ParseDir.
type DirOptions struct {
	Options
	Jobs      int          // 0 - GOMAXPROCS
	Cache     *ModuleCache // nil disables caching
	Progress  ProgressSink
	KeepTrees bool // иначе деревья освобождаются сразу после разбора
}

// FileResult содержит результат парсинга одного файла
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Tree   *ast.Tree // nil unless KeepTrees, or when served from cache
	Root   ast.NodeID
	Forms  int
	Nodes  int
	Cached bool
}

// Release frees the tree, if one was kept.
func (r *FileResult) Release() error {
	if r.Tree == nil {
		return nil
	}
	return r.Tree.Release()
}

// ListSourceFiles возвращает отсортированный список всех *.risp файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
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

// ParseDir парсит все *.risp файлы в директории параллельно. Results are
// in path order; one file's syntax error never stops the others.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := ParseFiles(ctx, fileSet, files, opts)
	return fileSet, results, err
}

// ParseFiles parses the given paths into fileSet.
func ParseFiles(ctx context.Context, fileSet *source.FileSet, files []string, opts DirOptions) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	tracer := opts.tracer(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "parse-dir", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(trace.WithTracer(ctx, tracer), trace.SpanContext{SpanID: span.ID()})

	// FileSet заполняется до старта горутин: дальше он только читается
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()
			bag := diag.NewBag(opts.maxDiagnostics())
			results[i] = FileResult{Path: path, Bag: bag}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Info{}, "failed to load file: "+loadErr.Error()))
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			res, err := parseOne(gctx, fileSet, fileIDs[i], path, opts)
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return err
			}
			results[i] = res

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	err := g.Wait()
	span.WithExtra("files", strconv.Itoa(len(files)))
	return results, err
}

func parseOne(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, path string, opts DirOptions) (FileResult, error) {
	file := fileSet.Get(fileID)
	out := FileResult{Path: path, FileID: fileID, Bag: diag.NewBag(opts.maxDiagnostics())}

	key := cacheKey(file.Content)
	if opts.Cache != nil && !opts.KeepTrees {
		emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
		payload, hit, err := opts.Cache.Get(path, key)
		if err != nil {
			out.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Info{File: fileID}, "cache read failed: "+err.Error()))
		}
		if hit {
			payload.replay(out.Bag, fileID)
			out.Forms, out.Nodes, out.Cached = payload.Forms, payload.Nodes, true
			return out, nil
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	res, err := parseLoaded(ctx, fileSet, fileID, opts.Options)
	if err != nil {
		return out, err
	}
	out.Bag.Merge(res.Bag)
	out.Root = res.Root
	out.Forms = res.Forms()
	out.Nodes = res.Tree.Len()

	if opts.Cache != nil {
		if err := opts.Cache.Put(path, payloadFromParse(path, key, res)); err != nil {
			out.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Info{File: fileID}, "cache write failed: "+err.Error()))
		}
	}
	if opts.KeepTrees {
		out.Tree = res.Tree
	} else if err := res.Release(); err != nil {
		return out, err
	}
	return out, nil
}
