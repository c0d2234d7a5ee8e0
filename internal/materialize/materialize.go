package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/project-labs/project/internal/conflict"
	"github.com/project-labs/project/internal/document"
	"github.com/project-labs/project/internal/errdefs"
	"github.com/project-labs/project/internal/walk"
	"github.com/spf13/afero"
)

// Outcome records what Materialize did with one file.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeCreated
	OutcomeOverwritten
	OutcomeMerged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCreated:
		return "created"
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeMerged:
		return "merged"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Materializer writes template files into a destination tree.
type Materializer struct {
	fs       afero.Fs
	resolver *conflict.Resolver
	strategy document.Strategy
	logger   *log.Logger
}

// New creates a Materializer. A nil logger discards output.
func New(fsys afero.Fs, resolver *conflict.Resolver, strategy document.Strategy, logger *log.Logger) *Materializer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Materializer{fs: fsys, resolver: resolver, strategy: strategy, logger: logger}
}

// Materialize resolves the action for dest and applies it to the file e.
func (m *Materializer) Materialize(ctx context.Context, rc *conflict.RunContext, e walk.Entry, dest string) (Outcome, error) {
	existed, err := afero.Exists(m.fs, dest)
	if err != nil {
		return OutcomeSkipped, errdefs.IO("checking", dest, err)
	}

	action, err := m.resolver.Decide(ctx, rc, dest, e.Path, existed)
	if err != nil {
		return OutcomeSkipped, err
	}

	switch action.Verb {
	case conflict.VerbSkip:
		m.logger.Info("skipping", "target", dest)
		return OutcomeSkipped, nil

	case conflict.VerbMerge:
		m.logger.Info("merging", "target", dest, "strategy", m.strategy)
		if err := m.merge(e, dest); err != nil {
			return OutcomeSkipped, err
		}
		return OutcomeMerged, nil

	default:
		if existed {
			m.logger.Info("overwriting", "target", dest)
		} else {
			m.logger.Debug("creating", "target", dest)
		}
		if err := m.overwrite(e, dest); err != nil {
			return OutcomeSkipped, err
		}
		if existed {
			return OutcomeOverwritten, nil
		}
		return OutcomeCreated, nil
	}
}

// merge folds the template document into the existing destination document.
// Nothing is written unless both sides are parseable documents.
func (m *Materializer) merge(e walk.Entry, dest string) error {
	for _, p := range []string{e.Path, dest} {
		if !document.Supports(p) {
			return fmt.Errorf("%w: I don't know how to merge the file type %q", errdefs.ErrUnsupportedMergeType, fileType(p))
		}
	}

	src, err := m.load(e.Path)
	if err != nil {
		return mergeError(err)
	}
	dst, err := m.load(dest)
	if err != nil {
		return mergeError(err)
	}

	merged, err := document.Merge(m.strategy, src, dst)
	if err != nil {
		return fmt.Errorf("merging %s: %w", dest, err)
	}
	data, err := merged.Encode()
	if err != nil {
		return fmt.Errorf("merging %s: %w", dest, err)
	}

	info, err := m.fs.Stat(dest)
	if err != nil {
		return errdefs.IO("stat", dest, err)
	}
	return m.writeFile(dest, data, info.Mode().Perm())
}

func (m *Materializer) overwrite(e walk.Entry, dest string) error {
	if err := m.fs.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return errdefs.IO("creating directory", filepath.Dir(dest), err)
	}

	if !document.Supports(e.Path) {
		return m.copyFile(e.Path, dest, e.Info.Mode().Perm())
	}

	raw, err := afero.ReadFile(m.fs, e.Path)
	if err != nil {
		return errdefs.IO("reading", e.Path, err)
	}
	v, err := document.Decode(raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", e.Path, err)
	}
	data, err := document.EncodeValue(v)
	if err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return m.writeFile(dest, data, e.Info.Mode().Perm())
}

func (m *Materializer) load(path string) (*document.Document, error) {
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, errdefs.IO("reading", path, err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

func mergeError(err error) error {
	if errors.Is(err, errdefs.ErrParse) {
		return fmt.Errorf("%w: %w", errdefs.ErrUnsupportedMergeType, err)
	}
	return err
}

// fileType names a path's type for error messages: its extension, or its
// base name when it has none.
func fileType(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return filepath.Base(path)
}
