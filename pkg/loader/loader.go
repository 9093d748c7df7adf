package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// Options selects the inputs of one gate run.
type Options struct {
	// Paths are files and directories; directories are scanned recursively.
	Paths []string
	// Extensions filters directory scans. Defaults to DefaultExtensions.
	Extensions []string
	// DSN optionally adds the rows of a biz_metadata table.
	DSN string
	// Tenant restricts the DSN query to one tenant.
	Tenant string
	// Logger receives per-source debug output. Defaults to slog.Default().
	Logger *slog.Logger
	// Observer, if set, is told about every source read.
	Observer Observer
}

// Observer receives per-source load statistics. *metrics.Collector
// implements it.
type Observer interface {
	RecordLoad(kind string, records, skipped int, duration time.Duration)
	RecordLoadError(kind string)
}

// Source kinds reported to an Observer.
const (
	KindCSV      = "csv"
	KindMarkdown = "markdown"
	KindSQL      = "sql"
)

type nopObserver struct{}

func (nopObserver) RecordLoad(string, int, int, time.Duration) {}
func (nopObserver) RecordLoadError(string)                     {}

// Result is a fully materialized batch and where it came from.
type Result struct {
	Inputs         []string        `json:"inputs"`
	ResolvedInputs []string        `json:"resolved_inputs"`
	Records        []record.Record `json:"-"`
	Skipped        []Skipped       `json:"-"`
}

// Load reads every input into memory. It fails on the first unreadable
// source; malformed rows are not an error and are left to the gate.
func Load(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Paths) == 0 && opts.DSN == "" {
		return nil, ErrNoSource
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "loader")
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	res := &Result{Inputs: append([]string(nil), opts.Paths...)}

	if len(opts.Paths) > 0 {
		files, err := ExpandInputs(opts.Paths, opts.Extensions)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			records, skipped, err := LoadFile(f)
			if err != nil {
				obs.RecordLoadError(FileKind(f))
				return nil, err
			}
			obs.RecordLoad(FileKind(f), len(records), len(skipped), time.Since(start))
			logger.Debug("loaded file", "path", f, "rows", len(records), "skipped", len(skipped))
			res.ResolvedInputs = append(res.ResolvedInputs, f)
			res.Records = append(res.Records, records...)
			res.Skipped = append(res.Skipped, skipped...)
		}
	}

	if opts.DSN != "" {
		start := time.Now()
		src, err := OpenSQL(ctx, opts.DSN)
		if err != nil {
			obs.RecordLoadError(KindSQL)
			return nil, err
		}
		defer src.Close()

		records, err := src.Load(ctx, opts.Tenant)
		if err != nil {
			obs.RecordLoadError(KindSQL)
			return nil, err
		}
		obs.RecordLoad(KindSQL, len(records), 0, time.Since(start))
		logger.Debug("loaded table", "source", src.Name(), "tenant", opts.Tenant, "rows", len(records))
		res.Inputs = append(res.Inputs, src.Name())
		res.ResolvedInputs = append(res.ResolvedInputs, src.Name())
		res.Records = append(res.Records, records...)
	}

	return res, nil
}

// FileKind names the source kind of path by extension: "csv", "markdown",
// or the bare extension for unsupported files.
func FileKind(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return KindCSV
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

// LoadFile reads one CSV or Markdown file, chosen by extension.
func LoadFile(path string) ([]record.Record, []Skipped, error) {
	kind := FileKind(path)
	if kind != KindCSV && kind != KindMarkdown {
		return nil, nil, NewSourceError(path, 0, "detect format", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path)))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, NewSourceError(path, 0, "open", err)
	}
	defer f.Close()

	if kind == KindCSV {
		records, err := ReadCSV(f, path)
		return records, nil, err
	}
	return ReadMarkdown(f, path)
}
