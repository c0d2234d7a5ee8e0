package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/project-labs/project/internal/conflict"
	"github.com/project-labs/project/internal/document"
	"github.com/project-labs/project/internal/errdefs"
	"github.com/project-labs/project/internal/materialize"
	"github.com/project-labs/project/internal/walk"
	"github.com/spf13/afero"
)

// Options holds the inputs of a scaffolding run.
type Options struct {
	Root         string            // existing destination directory
	TemplatePath string            // directory holding one subdirectory per template
	Strategy     document.Strategy // merge strategy; empty means document.DefaultStrategy
	Chooser      conflict.Chooser  // answers conflicts
	Logger       *log.Logger       // optional
}

// Result lists the destination paths, relative to the root, touched by a run.
type Result struct {
	Root        string
	Created     []string
	Overwritten []string
	Merged      []string
	Skipped     []string
}

// Total returns the number of template files processed.
func (r *Result) Total() int {
	return len(r.Created) + len(r.Overwritten) + len(r.Merged) + len(r.Skipped)
}

func (r *Result) record(o materialize.Outcome, rel string) {
	switch o {
	case materialize.OutcomeCreated:
		r.Created = append(r.Created, rel)
	case materialize.OutcomeOverwritten:
		r.Overwritten = append(r.Overwritten, rel)
	case materialize.OutcomeMerged:
		r.Merged = append(r.Merged, rel)
	default:
		r.Skipped = append(r.Skipped, rel)
	}
}

// Scaffolder materializes templates into one destination root.
type Scaffolder struct {
	fs           afero.Fs
	root         string
	templatePath string
	materializer *materialize.Materializer
	logger       *log.Logger
}

// New validates opts and returns a Scaffolder. The root must already exist
// as a directory; nothing is written here.
func New(fsys afero.Fs, opts Options) (*Scaffolder, error) {
	if opts.Root == "" {
		return nil, errdefs.InvalidInput(`"root" path not found`)
	}
	if opts.TemplatePath == "" {
		return nil, errdefs.InvalidInput(`"templatePath" path not found`)
	}
	if opts.Chooser == nil {
		return nil, errdefs.InvalidInput("no conflict chooser configured")
	}

	info, err := fsys.Stat(opts.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errdefs.InvalidInput(`"root" of [%s] not found`, opts.Root)
		}
		return nil, errdefs.IO("stat", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, errdefs.InvalidInput(`"root" of [%s] is not a directory`, opts.Root)
	}

	strategy, err := document.ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	resolver := conflict.NewResolver(fsys, opts.Chooser, logger)
	return &Scaffolder{
		fs:           fsys,
		root:         filepath.Clean(opts.Root),
		templatePath: filepath.Clean(opts.TemplatePath),
		materializer: materialize.New(fsys, resolver, strategy, logger),
		logger:       logger,
	}, nil
}

// Init materializes the template called name into the root. The first error
// aborts the run; files already written stay in place.
func (s *Scaffolder) Init(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		return nil, errdefs.InvalidInput("template name is required")
	}
	if !filepath.IsLocal(name) {
		return nil, errdefs.InvalidInput("template name %q must stay inside the template path", name)
	}

	sourceRoot := filepath.Join(s.templatePath, name)
	rc := conflict.NewRunContext()
	result := &Result{Root: s.root}

	s.logger.Debug("initializing from template", "template", name, "source", sourceRoot, "root", s.root)

	err := walk.Walk(ctx, s.fs, sourceRoot, func(ctx context.Context, e walk.Entry) error {
		rel, err := RelativePath(sourceRoot, e.Path)
		if err != nil {
			return err
		}
		dest := filepath.Join(s.root, rel)

		outcome, err := s.materializer.Materialize(ctx, rc, e, dest)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		result.record(outcome, rel)
		return nil
	})
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
		return nil, err
	}

	return result, nil
}

// RelativePath strips sourceRoot from path. The result is clean: no leading
// separators and no "." or ".." segments. Dotfiles keep their names.
func RelativePath(sourceRoot, path string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, path)
	if err != nil || rel == "." || !filepath.IsLocal(rel) {
		return "", errdefs.InvalidInput("%s is not a file inside %s", path, sourceRoot)
	}
	return rel, nil
}

// ListTemplates returns the names of the template directories under
// templatePath, sorted.
func ListTemplates(fsys afero.Fs, templatePath string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errdefs.NotFound("template path %s does not exist", templatePath)
		}
		return nil, errdefs.IO("reading directory", templatePath, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
