package materialize

import (
	"io"
	"os"
	"path/filepath"

	"github.com/project-labs/project/internal/errdefs"
	"github.com/spf13/afero"
)

const dirPerm os.FileMode = 0755

// copyFile copies src to dst byte for byte with the given permissions.
func (m *Materializer) copyFile(src, dst string, perm os.FileMode) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return errdefs.IO("opening", src, err)
	}
	defer in.Close()

	return m.writeAtomic(dst, perm, func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return errdefs.IO("copying", src, err)
		}
		return nil
	})
}

// writeFile replaces path with data.
func (m *Materializer) writeFile(path string, data []byte, perm os.FileMode) error {
	return m.writeAtomic(path, perm, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return errdefs.IO("writing", path, err)
		}
		return nil
	})
}

// writeAtomic writes to a temp file next to path and renames it into place,
// so an interrupted write never leaves a truncated destination.
func (m *Materializer) writeAtomic(path string, perm os.FileMode, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(m.fs, dir, ".project-tmp-*")
	if err != nil {
		return errdefs.IO("creating temp file in", dir, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = m.fs.Remove(tmpPath)
		}
	}()

	if err := fill(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return errdefs.IO("syncing", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errdefs.IO("closing", tmpPath, err)
	}
	if err := m.fs.Chmod(tmpPath, perm); err != nil {
		return errdefs.IO("chmod", tmpPath, err)
	}
	if err := m.fs.Rename(tmpPath, path); err != nil {
		return errdefs.IO("renaming", tmpPath, err)
	}
	committed = true
	return nil
}
