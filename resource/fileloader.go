package resource

import (
	"context"
	"os"
	"path/filepath"

	celerpath "github.com/celer-dev/celerc/path"
)

// FileLoader loads local resources off disk, rooted at a base directory.
// Grounded on the teacher's os.ReadFile/filepath.Join idiom
// (internal/project/project.go, internal/provisioners/loader/load.go).
type FileLoader struct {
	Root string
}

// NewFileLoader returns a loader rooted at root.
func NewFileLoader(root string) *FileLoader {
	return &FileLoader{Root: root}
}

func (f *FileLoader) LoadRaw(_ context.Context, rp celerpath.ResPath) ([]byte, error) {
	if rp.IsRemote() {
		return nil, newError(ErrFailToLoadURL, rp, os.ErrInvalid)
	}
	full := filepath.Join(f.Root, filepath.FromSlash(rp.Path().String()))
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, newError(ErrFailToLoadFile, rp, err)
	}
	return data, nil
}

func (f *FileLoader) CheckChanged(_ context.Context, rp celerpath.ResPath, fingerprint string) (ChangeStatus, string, error) {
	full := filepath.Join(f.Root, filepath.FromSlash(rp.Path().String()))
	info, err := os.Stat(full)
	if err != nil {
		return StatusLoaded, "", newError(ErrFailToLoadFile, rp, err)
	}
	mark := info.ModTime().UTC().Format("20060102T150405.000000000")
	if mark == fingerprint {
		return StatusNotModified, mark, nil
	}
	return StatusLoaded, mark, nil
}

var _ Loader = (*FileLoader)(nil)
var _ ChangeProbe = (*FileLoader)(nil)
