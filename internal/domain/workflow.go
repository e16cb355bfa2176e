package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"refract.dev/pkg/refract/internal/adapter"
	"refract.dev/pkg/refract/internal/controller"
	m "refract.dev/pkg/refract/internal/model"
	"refract.dev/pkg/refract/pkg"
)

// CheckArgs carries the inputs of the check workflow.
type CheckArgs struct {
	// Paths are files or directories to scan; directories are walked
	// recursively. A trailing /... is accepted for familiarity.
	Paths []m.Path
	// Excludes maps rule name to path patterns; the "*" key applies to
	// every rule.
	Excludes map[string][]string
	// Output is the directory results are persisted to; empty disables
	// persistence.
	Output m.Path
	// Threads bounds the fan-out across files. Rules within one file
	// always run sequentially.
	Threads int
}

// ViewArgs carries the inputs of the view workflow.
type ViewArgs struct {
	Output m.Path
}

// Workflow wires the per-file pipeline into the user-facing commands.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) (*m.ResultSet, error)
	List(ctx context.Context) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	store    adapter.ResultStore
	ui       controller.UI
	pipeline Pipeline
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	store adapter.ResultStore,
	ui controller.UI,
	pipeline Pipeline,
) Workflow {
	return &workflow{
		fs:       fs,
		store:    store,
		ui:       ui,
		pipeline: pipeline,
	}
}

// Check runs every rule over every requested file and reports the
// collected results. Files are processed with bounded parallelism, but
// outcomes are merged back in input order so entries stay ordered by
// file-processing order.
func (w *workflow) Check(ctx context.Context, args CheckArgs) (*m.ResultSet, error) {
	rules, err := DefaultRules(args.Excludes)
	if err != nil {
		return nil, err
	}

	files, err := w.collectFiles(args.Paths)
	if err != nil {
		return nil, err
	}

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	outcomes := make([]*m.ResultSet, len(files))
	fileErrs := make([]error, len(files))

	var group errgroup.Group

	group.SetLimit(threads)

	for i, file := range files {
		i, file := i, file

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				fileErrs[i] = err
				return nil
			}

			set := m.NewResultSet(rules)
			if err := w.pipeline.ProcessFile(file, rules, set); err != nil {
				// Fatal for this file only; every other file proceeds.
				fileErrs[i] = err
				return nil
			}

			outcomes[i] = set

			return nil
		})
	}

	_ = group.Wait()

	results := m.NewResultSet(rules)

	for _, set := range outcomes {
		if set == nil {
			continue
		}

		for _, perRule := range set.All() {
			for _, entry := range perRule.Entries {
				results.Append(perRule.Rule, entry)
			}
		}
	}

	if args.Output != "" {
		w.journalEntries(args.Output, results)

		if err := w.store.SaveResults(args.Output, results.All()); err != nil {
			return results, err
		}
	}

	for i, fileErr := range fileErrs {
		if fileErr != nil {
			w.ui.DisplayFileError(ctx, files[i], fileErr)
		}
	}

	if err := w.ui.DisplayResults(ctx, results.All()); err != nil {
		return results, err
	}

	return results, nil
}

// journalEntries spills every entry to an append-only journal under the
// output directory. Journal failures never fail the run.
func (w *workflow) journalEntries(output m.Path, results *m.ResultSet) {
	journal, err := pkg.NewJournal[m.ResultEntry](string(output))
	if err != nil {
		slog.Warn("failed to create entry journal", "dir", output, "error", err)
		return
	}

	defer func() {
		if err := journal.Close(); err != nil {
			slog.Warn("failed to close entry journal", "path", journal.Path(), "error", err)
		}
	}()

	for _, perRule := range results.All() {
		for _, entry := range perRule.Entries {
			if err := journal.Append(entry); err != nil {
				slog.Warn("failed to journal entry", "path", journal.Path(), "error", err)
				return
			}
		}
	}

	slog.Debug("journaled result entries", "path", journal.Path(), "count", journal.Len())
}

// List displays the registered rules.
func (w *workflow) List(ctx context.Context) error {
	rules, err := DefaultRules(nil)
	if err != nil {
		return err
	}

	return w.ui.DisplayRules(ctx, rules)
}

// View loads previously saved results and opens the browser.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	results, err := w.store.LoadResults(args.Output)
	if err != nil {
		return err
	}

	return w.ui.Browse(ctx, results)
}

// collectFiles expands the requested paths into the ordered list of Go
// files to process. Defaults to the current directory.
func (w *workflow) collectFiles(paths []m.Path) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	var files []m.Path

	seen := make(map[m.Path]struct{})

	for _, path := range paths {
		root := strings.TrimSuffix(strings.TrimSuffix(string(path), "..."), string(filepath.Separator))
		if root == "" {
			root = "."
		}

		info, err := w.fs.FileInfo(m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", path, err)
		}

		if !info.IsDir() {
			files = appendFile(files, seen, m.Path(root))
			continue
		}

		walkErr := w.fs.Walk(m.Path(root), true, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				name := info.Name()
				if p != root && (name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(p) != ".go" {
				return nil
			}

			files = appendFile(files, seen, m.Path(p))

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", path, walkErr)
		}
	}

	return files, nil
}

func appendFile(files []m.Path, seen map[m.Path]struct{}, path m.Path) []m.Path {
	if _, ok := seen[path]; ok {
		return files
	}

	seen[path] = struct{}{}

	return append(files, path)
}
