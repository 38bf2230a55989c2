// Package driver runs the formatter over files and directories: discovery,
// parallel execution, the result cache, and write-back.
package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"surgefmt/internal/format"
	"surgefmt/internal/source"
)

// FormatOptions configures a bulk format run.
type FormatOptions struct {
	// Check: report files that would change without touching them.
	Check bool
	// Stdout: return formatted bytes in the results instead of writing files.
	Stdout bool
	// Jobs caps the number of parallel workers; <=0 means GOMAXPROCS.
	Jobs int
	// Options is the per-file formatting configuration.
	Options format.Options
	// Cache, when non-nil, skips re-formatting files whose content and
	// options were seen before.
	Cache *ResultCache
	// Events receives per-file progress; may be nil.
	Events EventSink
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats the given files and directories (recursively collecting
// .sg files). Files are processed in parallel; results come back in the
// deterministic sorted-path order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FormatResult, len(files))
	for i, path := range files {
		results[i] = FormatResult{Path: path}
		notify(opts.Events, Event{File: path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			notify(opts.Events, Event{File: path, Status: StatusWorking})
			results[i] = formatOne(path, opts)

			status := StatusDone
			switch {
			case results[i].Err != nil:
				status = StatusError
			case results[i].Changed:
				status = StatusChanged
			}
			notify(opts.Events, Event{File: path, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI
	if err != nil {
		res.Err = err
		return res
	}

	formatted, changed, err := formatBytes(path, data, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = changed

	if opts.Check {
		return res
	}
	if opts.Stdout {
		res.Formatted = formatted
		return res
	}
	if changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			res.Err = err
			res.Changed = false
		}
	}
	return res
}

func formatBytes(path string, data []byte, opts FormatOptions) (formatted []byte, changed bool, err error) {
	key := cacheKey(data, opts.Options)
	if opts.Cache != nil {
		var payload ResultPayload
		if hit, cerr := opts.Cache.Get(key, &payload); cerr == nil && hit {
			return payload.Formatted, payload.Changed, nil
		}
	}

	body, hadBOM := source.RemoveBOM(data)
	fileSet := source.NewFileSet()
	f := fileSet.Get(fileSet.AddVirtual(path, body))

	formatted, err = format.File(f, opts.Options)
	if err != nil {
		return nil, false, err
	}
	if hadBOM {
		formatted = append([]byte{0xEF, 0xBB, 0xBF}, formatted...)
	}
	changed = !bytes.Equal(data, formatted)

	if opts.Cache != nil {
		// cache miss уже оплачен; ошибка записи не мешает результату
		_ = opts.Cache.Put(key, &ResultPayload{
			Schema:    resultCacheSchemaVersion,
			Formatted: formatted,
			Changed:   changed,
		})
	}
	return formatted, changed, nil
}

// CollectSourceFiles expands files and directories into the deterministic
// sorted list of .sg files a run will touch.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if filepath.Ext(path) == ".sg" {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == ".sg" {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}
