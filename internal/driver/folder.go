package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"esdata/internal/data"
	"esdata/internal/diag"
	"esdata/internal/diagfmt"
	"esdata/internal/observ"
	"esdata/internal/parser"
	"esdata/internal/source"
	"esdata/internal/trace"
)

// DefaultKind labels rendered parse errors.
const DefaultKind = "ERROR"

// DefaultMaxDiagnostics caps the diagnostics kept per file.
const DefaultMaxDiagnostics = 100

// Options configures ReadFolder.
type Options struct {
	// Extension of data files, with or without the dot.
	Extension string
	// Kind labels rendered errors.
	Kind string
	// Trimmed replaces elided text in rendered errors.
	Trimmed string
	Palette diagfmt.Palette
	// Jobs is the number of parsing workers; 0 uses GOMAXPROCS, 1 parses
	// sequentially into one store.
	Jobs           int
	MaxDiagnostics int
	// Cache is optional.
	Cache   *DiskCache
	Timer   *observ.Timer
	OnEvent EventSink
}

// DefaultOptions returns options matching the stock data layout.
func DefaultOptions() Options {
	return Options{
		Extension:      DefaultExtension,
		Kind:           DefaultKind,
		Trimmed:        diagfmt.DefaultTrimmed,
		Palette:        diagfmt.DefaultPalette(),
		MaxDiagnostics: DefaultMaxDiagnostics,
	}
}

// FileResult is the outcome for one file of a folder.
type FileResult struct {
	Path   string
	FileID source.FileID
	Source data.SourceIndex
	Errors []parser.Error
	Bag    *diag.Bag
	Cached bool
	// LoadErr is set when the file could not be read; nothing else is.
	LoadErr error
}

// Folder is every data file of a directory parsed into one store.
type Folder struct {
	Dir     string
	Data    *data.Data
	FileSet *source.FileSet
	Files   []FileResult
	Reports *diagfmt.Book
}

// ErrorCount returns the number of parse and load errors.
func (f *Folder) ErrorCount() int {
	n := 0
	for i := range f.Files {
		n += len(f.Files[i].Errors)
		if f.Files[i].LoadErr != nil {
			n++
		}
	}
	return n
}

// Diagnostics merges the per-file bags in file order.
func (f *Folder) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	for i := range f.Files {
		out.Merge(f.Files[i].Bag)
	}
	return out
}

// Roots returns the root nodes of every parsed file in file order.
func (f *Folder) Roots() []data.Root {
	var roots []data.Root
	for i := range f.Files {
		if f.Files[i].LoadErr != nil {
			continue
		}
		roots = append(roots, f.Data.SourceRoots(f.Files[i].Source)...)
	}
	return roots
}

// displayName is the path shown in reports: relative to the folder when
// possible.
func (f *Folder) displayName(id source.FileID) string {
	return f.FileSet.Display(id, source.PathRelative)
}

// parsed is the result of parsing one file in isolation.
type parsed struct {
	src    data.SourceIndex
	errs   []parser.Error
	cached bool
	warn   *diag.Diagnostic
}

// ReadFolder loads every data file below dir, parses it and renders its
// errors. Cancellation is checked between files.
func ReadFolder(ctx context.Context, dir string, opts Options) (*Folder, error) {
	if opts.Kind == "" {
		opts.Kind = DefaultKind
	}
	if opts.Trimmed == "" {
		opts.Trimmed = diagfmt.DefaultTrimmed
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}

	span, ctx := trace.Start(ctx, trace.ScopeRun, "read-folder")
	defer span.End("")

	var files []string
	err := opts.Timer.Measure("list", func() error {
		var listErr error
		files, listErr = ListFiles(dir, opts.Extension)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	span.Attr("files", strconv.Itoa(len(files)))

	base := dir
	if len(files) == 1 && files[0] == dir {
		base = filepath.Dir(dir)
	}
	folder := &Folder{
		Dir:     dir,
		Data:    data.New(),
		FileSet: source.NewFileSetWithBase(base),
		Files:   make([]FileResult, len(files)),
		Reports: diagfmt.NewBook(opts.Trimmed, opts.Palette),
	}
	for _, path := range files {
		opts.OnEvent.emit(path, StageLoad, StatusQueued)
	}

	_ = opts.Timer.Measure("load", func() error {
		folder.load(ctx, files, opts)
		return nil
	})

	err = opts.Timer.Measure("parse", func() error {
		if opts.Jobs == 1 {
			return folder.parseSequential(ctx, opts)
		}
		return folder.parseParallel(ctx, opts)
	})
	if err != nil {
		return folder, err
	}

	_ = opts.Timer.Measure("report", func() error {
		folder.report(opts)
		return nil
	})
	opts.OnEvent.emit("", StageReport, StatusDone)
	span.Attr("errors", strconv.Itoa(folder.ErrorCount()))
	return folder, nil
}

func (f *Folder) load(ctx context.Context, files []string, opts Options) {
	stage, _ := trace.Start(ctx, trace.ScopeStage, "load")
	defer stage.End("")

	for i, path := range files {
		res := &f.Files[i]
		res.Path = path
		res.Bag = diag.NewBag(opts.MaxDiagnostics)

		opts.OnEvent.emit(path, StageLoad, StatusWorking)
		id, err := f.FileSet.Load(path)
		if err != nil {
			res.LoadErr = err
			res.Bag.Add(diag.NewError(diag.IOLoadFileError, 0, source.Span{}, "failed to load file: "+err.Error()))
			opts.OnEvent.emit(path, StageLoad, StatusError)
			continue
		}
		res.FileID = id
		opts.OnEvent.emit(path, StageLoad, StatusDone)
	}
}

func (f *Folder) parseSequential(ctx context.Context, opts Options) error {
	for i := range f.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := &f.Files[i]
		if res.LoadErr != nil {
			continue
		}
		p := parseFile(ctx, f.Data, f.FileSet.Get(res.FileID), opts)
		f.apply(res, p.src, p, opts)
	}
	return nil
}

func (f *Folder) parseParallel(ctx context.Context, opts Options) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// одно хранилище на файл; слияние ниже идёт в порядке файлов
	stores := make([]*data.Data, len(f.Files))
	results := make([]parsed, len(f.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(f.Files))))

	for i := range f.Files {
		if f.Files[i].LoadErr != nil {
			continue
		}
		file := f.FileSet.Get(f.Files[i].FileID)
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			d := data.New()
			results[i] = parseFile(gctx, d, file, opts)
			stores[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range f.Files {
		if stores[i] == nil {
			continue
		}
		remap := f.Data.Merge(stores[i])
		f.apply(&f.Files[i], remap[results[i].src], results[i], opts)
	}
	return nil
}

func (f *Folder) apply(res *FileResult, src data.SourceIndex, p parsed, opts Options) {
	res.Source = src
	res.Errors = p.errs
	res.Cached = p.cached
	if p.warn != nil {
		res.Bag.Add(*p.warn)
	}
	for _, e := range p.errs {
		res.Bag.Add(e.Diagnostic(res.FileID))
	}
	status := StatusDone
	if len(p.errs) > 0 {
		status = StatusError
	}
	opts.OnEvent.emit(res.Path, StageParse, status)
}

// parseFile parses one file into d, going through the cache when one is
// configured. Cache failures never fail the parse; they come back as a
// warning.
func parseFile(ctx context.Context, d *data.Data, file *source.File, opts Options) parsed {
	opts.OnEvent.emit(file.Path, StageParse, StatusWorking)

	var out parsed
	if opts.Cache != nil {
		var payload CachePayload
		hit, err := opts.Cache.Get(file.Hash, &payload)
		switch {
		case err != nil:
			out.warn = cacheWarning(file.ID, err)
		case hit:
			return parsed{src: d.Import(payload.Snapshot), errs: restoreErrors(payload.Errors), cached: true}
		}
	}

	src := d.InsertSource(string(file.Content))
	p := parser.New(d, src, parser.Options{File: file.ID, MaxErrors: maxErrors(opts.MaxDiagnostics)})
	p.Parse(ctx)
	out.src = src
	out.errs = p.TakeErrors()

	if opts.Cache != nil && out.warn == nil {
		if snap, ok := d.Export(src); ok {
			payload := &CachePayload{Path: file.Path, Snapshot: snap, Errors: cacheErrors(out.errs)}
			if err := opts.Cache.Put(file.Hash, payload); err != nil {
				out.warn = cacheWarning(file.ID, err)
			}
		}
	}
	return out
}

func cacheWarning(file source.FileID, err error) *diag.Diagnostic {
	d := diag.New(diag.SevWarning, diag.IOCacheError, file, source.Span{}, "parse cache unavailable: "+err.Error())
	return &d
}

func maxErrors(maxDiagnostics int) uint {
	if maxDiagnostics <= 0 {
		return 0
	}
	n, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	return n
}

// report renders every parse error into the folder's book, keyed by the
// file's display name.
func (f *Folder) report(opts Options) {
	for i := range f.Files {
		res := &f.Files[i]
		if res.LoadErr != nil || len(res.Errors) == 0 {
			continue
		}
		name := f.displayName(res.FileID)
		for _, e := range res.Errors {
			f.Reports.Add(f.Data, res.Source, opts.Kind, name, e)
		}
		opts.OnEvent.emit(res.Path, StageReport, StatusDone)
	}
}
