package resource

import (
	"context"
	"fmt"

	celerpath "github.com/celer-dev/celerc/path"
)

// Resource is a (ResPath, Loader) pair (spec §3/§4.1). It is the handle
// every phase of the pipeline uses to fetch bytes, and the thing Resolve
// derives siblings from.
type Resource struct {
	rp     celerpath.ResPath
	loader BaseLoader
}

// New constructs a Resource from a ResPath and the Loader that can fetch
// it.
func New(rp celerpath.ResPath, loader Loader) Resource {
	return Resource{rp: rp, loader: BaseLoader{Loader: loader}}
}

// Path returns the resource's ResPath.
func (r Resource) Path() celerpath.ResPath {
	return r.rp
}

func (r Resource) LoadBytes(ctx context.Context) ([]byte, error) {
	return r.loader.LoadRaw(ctx, r.rp)
}

func (r Resource) LoadString(ctx context.Context) (string, error) {
	return r.loader.LoadUTF8(ctx, r.rp)
}

func (r Resource) LoadStructured(ctx context.Context) (any, error) {
	return r.loader.LoadStructured(ctx, r.rp)
}

func (r Resource) LoadImageURL(ctx context.Context) (string, error) {
	return r.loader.LoadImageURL(ctx, r.rp)
}

// Resolve derives a sibling resource from a parsed Use clause, preserving
// the loader handle (spec §4.1):
//   - KindAbsolute rebases from the project root within the current
//     resource's tree (local root if this resource is local, the remote's
//     own root if this resource is remote).
//   - KindRelative rebases against this resource's parent directory,
//     popping ".." segments against that base.
//   - KindRemote constructs a brand new Remote ResPath; the remote path is
//     used unchanged (it is already rooted at the remote's tree).
func (r Resource) Resolve(u celerpath.Use) (Resource, error) {
	switch u.Kind {
	case celerpath.KindAbsolute:
		return New(r.rp.WithPath(u.Path), r.loader.Loader), nil
	case celerpath.KindRelative:
		parent, ok := r.rp.Path().Parent()
		if !ok {
			parent = r.rp.Path()
		}
		joined := parent
		valid := true
		for _, seg := range u.RelSegments {
			var jok bool
			joined, jok = joined.Join(seg)
			if !jok {
				valid = false
				break
			}
		}
		if !valid {
			return Resource{}, fmt.Errorf("relative use escapes root")
		}
		return New(r.rp.WithPath(joined), r.loader.Loader), nil
	case celerpath.KindRemote:
		prefix := remotePrefix(u.Owner, u.Repo, u.Reference)
		return New(celerpath.Remote(prefix, u.Path), r.loader.Loader), nil
	default:
		return Resource{}, fmt.Errorf("not a resolvable use")
	}
}

func remotePrefix(owner, repo, reference string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/", owner, repo, reference)
}
