package path

import "fmt"

// ResPath identifies a resource: either a path local to the project root,
// or a path within a remote repository.
type ResPath struct {
	remote bool
	prefix string // URL authority+root, e.g. "https://raw.githubusercontent.com/owner/repo/ref/"
	path   Path
}

// Local constructs a local ResPath.
func Local(p Path) ResPath {
	return ResPath{path: p}
}

// Remote constructs a remote ResPath from a prefix (authority+root) and a
// path within that remote tree.
func Remote(prefix string, p Path) ResPath {
	return ResPath{remote: true, prefix: prefix, path: p}
}

// IsRemote reports whether this ResPath refers to a remote repository.
func (r ResPath) IsRemote() bool {
	return r.remote
}

// Path returns the path component.
func (r ResPath) Path() Path {
	return r.path
}

// Prefix returns the remote prefix, or "" for local paths.
func (r ResPath) Prefix() string {
	return r.prefix
}

// String renders a debug/log-friendly representation.
func (r ResPath) String() string {
	if r.remote {
		return fmt.Sprintf("%s%s", r.prefix, r.path.String())
	}
	return "/" + r.path.String()
}

// WithPath returns a copy of r with its path replaced.
func (r ResPath) WithPath(p Path) ResPath {
	r.path = p
	return r
}
