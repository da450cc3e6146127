// Package pack implements the Pack phase (spec §4.10): recursive
// expansion of `{"use": "<ref>"}` indirection nodes into a RouteBlob
// tree, with depth limits enforced by embedding pack.Error nodes in situ
// rather than aborting the whole traversal (invariant 5, "Pack error
// locality"). Grounded on the original `compiler-core/src/pack/pack_use.rs`
// (the Use variant this builds on top of `path.ParseUseObject`) and
// `pack_config.rs` (the use-then-recurse-under-new-resource shape).
package pack

import (
	"context"

	"github.com/celer-dev/celerc/blob"
	celerpath "github.com/celer-dev/celerc/path"
	"github.com/celer-dev/celerc/resource"
	"github.com/celer-dev/celerc/setting"
)

// Packer expands route values against a fixed depth Setting.
type Packer struct {
	Setting setting.Setting
}

// New returns a Packer configured with s.
func New(s setting.Setting) *Packer {
	return &Packer{Setting: s}
}

// Expand walks v (a generic map[string]any/[]any/scalar tree, as decoded
// by resource.Resource.LoadStructured), resolving every `use:` node
// against res and recursing into the substituted value under the
// resource it was loaded from, so the substituted value's own relative
// `use:` refs resolve against its own location (spec §4.10).
func (p *Packer) Expand(ctx context.Context, res resource.Resource, v any) blob.RouteBlob {
	return p.expand(ctx, res, v, 0, 0)
}

// DetectUse is celerpath.ParseUseObject generalized over both of the
// object shapes a decoded value can take: an *resource.OrderedMap (as
// produced by resource.LoadStructured) or a plain map[string]any
// (hand-built values, tests). celerpath can't do this check itself since
// it sits below resource in the dependency order.
func DetectUse(v any) celerpath.Use {
	var m map[string]any
	switch x := v.(type) {
	case map[string]any:
		m = x
	case *resource.OrderedMap:
		if x.Len() != 1 {
			return celerpath.Use{Kind: celerpath.KindNotUse, Original: v}
		}
		m = make(map[string]any, 1)
		x.Each(func(k string, val any) { m[k] = val })
	default:
		return celerpath.Use{Kind: celerpath.KindNotUse, Original: v}
	}
	return celerpath.ParseUseObject(m)
}

func (p *Packer) expand(ctx context.Context, res resource.Resource, v any, useDepth, refDepth int) blob.RouteBlob {
	if refDepth > p.Setting.MaxRefDepth {
		return blob.Err(newError(ErrMaxRefDepthExceeded, res.Path(), nil))
	}

	use := DetectUse(v)
	switch use.Kind {
	case celerpath.KindInvalid:
		return blob.Err(newError(ErrInvalidUse, res.Path(), nil))
	case celerpath.KindRelative, celerpath.KindAbsolute, celerpath.KindRemote:
		if useDepth >= p.Setting.MaxUseDepth {
			return blob.Err(newError(ErrMaxUseDepthExceeded, res.Path(), nil))
		}
		next, err := res.Resolve(use)
		if err != nil {
			return blob.Err(newError(ErrInvalidPath, res.Path(), err))
		}
		structured, err := next.LoadStructured(ctx)
		if err != nil {
			return blob.Err(loaderError(next, err))
		}
		return p.expand(ctx, next, structured, useDepth+1, refDepth+1)
	default: // KindNotUse: recurse structurally, resetting the use-chain counter
		switch x := v.(type) {
		case []any:
			items := make([]blob.RouteBlob, len(x))
			for i, item := range x {
				items[i] = p.expand(ctx, res, item, 0, refDepth+1)
			}
			return blob.Array(items)
		case *resource.OrderedMap:
			obj := blob.NewObject[blob.RouteBlob]()
			for _, k := range x.Keys() {
				val, _ := x.Get(k)
				obj.Set(k, p.expand(ctx, res, val, 0, refDepth+1))
			}
			return blob.Object(obj)
		case map[string]any:
			// Not produced by resource.LoadStructured — kept for
			// hand-built route values (tests).
			obj := blob.NewObject[blob.RouteBlob]()
			for k, val := range x {
				obj.Set(k, p.expand(ctx, res, val, 0, refDepth+1))
			}
			return blob.Object(obj)
		default:
			return blob.FromJSON(v)
		}
	}
}

// Resolve is Expand's fail-fast sibling: instead of embedding an Err node
// and continuing, it stops at the first failure and returns it directly.
// Prep uses this for properties whose errors are fatal rather than
// per-line (spec §7: everything outside the `route` subtree), so it
// hands callers generic values ([]any, scalars, and objects as
// map[string]any or, for ordered input, *resource.OrderedMap) instead of
// a RouteBlob tree.
func (p *Packer) Resolve(ctx context.Context, res resource.Resource, v any) (any, error) {
	return p.resolve(ctx, res, v, 0, 0)
}

func (p *Packer) resolve(ctx context.Context, res resource.Resource, v any, useDepth, refDepth int) (any, error) {
	if refDepth > p.Setting.MaxRefDepth {
		return nil, newError(ErrMaxRefDepthExceeded, res.Path(), nil)
	}

	use := DetectUse(v)
	switch use.Kind {
	case celerpath.KindInvalid:
		return nil, newError(ErrInvalidUse, res.Path(), nil)
	case celerpath.KindRelative, celerpath.KindAbsolute, celerpath.KindRemote:
		if useDepth >= p.Setting.MaxUseDepth {
			return nil, newError(ErrMaxUseDepthExceeded, res.Path(), nil)
		}
		next, err := res.Resolve(use)
		if err != nil {
			return nil, newError(ErrInvalidPath, res.Path(), err)
		}
		structured, err := next.LoadStructured(ctx)
		if err != nil {
			return nil, loaderError(next, err)
		}
		return p.resolve(ctx, next, structured, useDepth+1, refDepth+1)
	default:
		switch x := v.(type) {
		case []any:
			out := make([]any, len(x))
			for i, item := range x {
				r, err := p.resolve(ctx, res, item, 0, refDepth+1)
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return out, nil
		case *resource.OrderedMap:
			// Mirrors the input's ordering: the resolved value still
			// feeds preset.Compile/blob.FromJSON downstream (presets,
			// plugin options), which need source object order intact.
			out := resource.NewOrderedMap()
			for _, k := range x.Keys() {
				val, _ := x.Get(k)
				r, err := p.resolve(ctx, res, val, 0, refDepth+1)
				if err != nil {
					return nil, err
				}
				out.Set(k, r)
			}
			return out, nil
		case map[string]any:
			out := make(map[string]any, len(x))
			for k, val := range x {
				r, err := p.resolve(ctx, res, val, 0, refDepth+1)
				if err != nil {
					return nil, err
				}
				out[k] = r
			}
			return out, nil
		default:
			return v, nil
		}
	}
}

func loaderError(res resource.Resource, err error) *Error {
	kind := ErrFailToLoadFile
	if res.Path().IsRemote() {
		kind = ErrFailToLoadURL
	}
	if rerr, ok := err.(*resource.Error); ok {
		switch rerr.Kind {
		case resource.ErrUnknownFormat:
			kind = ErrUnknownFormat
		case resource.ErrInvalidFormat:
			kind = ErrInvalidFormat
		case resource.ErrFailToLoadURL:
			kind = ErrFailToLoadURL
		}
	}
	return newError(kind, res.Path(), err)
}

// FirstErr searches b depth-first for the first embedded Err node,
// reporting it so a fatal-phase caller (Prep, building non-route
// metadata) can surface it immediately instead of deferring to Comp
// (spec §7: Prep/Pack errors are fatal outside the `route` subtree).
func FirstErr(b blob.RouteBlob) (blob.PackErr, bool) {
	switch b.Kind() {
	case blob.KindErr:
		err, _ := b.AsErr()
		return err, true
	case blob.KindArray:
		items, _ := b.AsArray()
		for _, item := range items {
			if err, ok := FirstErr(item); ok {
				return err, true
			}
		}
	case blob.KindObject:
		obj, _ := b.AsObject()
		var found blob.PackErr
		var ok bool
		if obj != nil {
			obj.Each(func(_ string, v blob.RouteBlob) {
				if ok {
					return
				}
				if e, has := FirstErr(v); has {
					found, ok = e, true
				}
			})
		}
		return found, ok
	}
	return nil, false
}
