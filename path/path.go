// Package path implements celer's virtual path value type: an ordered
// sequence of non-empty segments with no filesystem identity of its own.
package path

import "strings"

// Path is an ordered, normalised sequence of path segments. The zero value
// is the root path (no segments).
type Path struct {
	segments []string
}

// New returns the root path.
func New() Path {
	return Path{}
}

// String renders the path as a '/'-separated string. The root path renders
// as the empty string.
func (p Path) String() string {
	return strings.Join(p.segments, "/")
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Join appends the segments of s (after normalising backslashes to
// forward slashes) onto p, resolving "." and ".." components. It returns
// false if a ".." component would pop past the root.
func (p Path) Join(s string) (Path, bool) {
	normalised := strings.ReplaceAll(s, `\`, "/")
	segments := make([]string, len(p.segments))
	copy(segments, p.segments)
	for _, part := range strings.Split(normalised, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(segments) == 0 {
				return Path{}, false
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, part)
		}
	}
	return Path{segments: segments}, true
}

// Parent returns the path with its last segment removed, and true, or the
// zero Path and false if p is already the root.
func (p Path) Parent() (Path, bool) {
	if len(p.segments) == 0 {
		return Path{}, false
	}
	segments := make([]string, len(p.segments)-1)
	copy(segments, p.segments[:len(p.segments)-1])
	return Path{segments: segments}, true
}

// Equal reports whether two paths have identical segments.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}
