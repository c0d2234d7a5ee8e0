package walk

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/project-labs/project/internal/errdefs"
	"github.com/spf13/afero"
)

// Entry describes one file discovered under the walk root.
type Entry struct {
	Dir  string      // containing directory
	Name string      // base name
	Path string      // full path, Dir joined with Name
	Info fs.FileInfo // stat of Path, symlinks followed
}

// VisitFunc is called once per file. A non-nil error stops the walk and is
// returned from Walk unchanged.
type VisitFunc func(ctx context.Context, e Entry) error

// Walk visits every non-directory entry reachable under root.
func Walk(ctx context.Context, fsys afero.Fs, root string, visit VisitFunc) error {
	info, err := fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errdefs.NotFound("walk root %s does not exist", root)
		}
		return errdefs.IO("stat", root, err)
	}
	if !info.IsDir() {
		return errdefs.InvalidInput("walk root %s is not a directory", root)
	}
	return walkDir(ctx, fsys, root, visit)
}

func walkDir(ctx context.Context, fsys afero.Fs, dir string, visit VisitFunc) error {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return errdefs.IO("reading directory", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())

		// ReadDir reports symlinks as themselves; stat so links to
		// directories are descended like the directories they point at.
		info, err := fsys.Stat(path)
		if err != nil {
			return errdefs.IO("stat", path, err)
		}

		if info.IsDir() {
			if err := walkDir(ctx, fsys, path, visit); err != nil {
				return err
			}
			continue
		}

		if err := visit(ctx, Entry{Dir: dir, Name: entry.Name(), Path: path, Info: info}); err != nil {
			return err
		}
	}

	return nil
}
