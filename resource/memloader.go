package resource

import (
	"context"

	celerpath "github.com/celer-dev/celerc/path"
)

// MemLoader is an in-memory Loader keyed by the rendered ResPath string,
// used throughout the test suites the way score-compose's tests build
// synthetic in-memory fixtures instead of touching disk.
type MemLoader struct {
	Files map[string][]byte
}

// NewMemLoader builds a MemLoader from a map of path string -> content.
func NewMemLoader(files map[string]string) *MemLoader {
	m := &MemLoader{Files: make(map[string][]byte, len(files))}
	for k, v := range files {
		m.Files[k] = []byte(v)
	}
	return m
}

func (m *MemLoader) LoadRaw(_ context.Context, rp celerpath.ResPath) ([]byte, error) {
	data, ok := m.Files[rp.String()]
	if !ok {
		return nil, newError(ErrFailToLoadFile, rp, errNotFound)
	}
	return data, nil
}

var _ Loader = (*MemLoader)(nil)
