package command

import (
	"context"
	"fmt"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/celer-dev/celerc/cache"
	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/exec"
	"github.com/celer-dev/celerc/pack"
	celerpath "github.com/celer-dev/celerc/path"
	"github.com/celer-dev/celerc/plugin"
	"github.com/celer-dev/celerc/prep"
	"github.com/celer-dev/celerc/resource"
	"github.com/celer-dev/celerc/runtime"
	"github.com/celer-dev/celerc/setting"
)

// Diagnostic is the CLI's unified diagnostic shape (spec §6): comp, exec
// and plugin diagnostics share this exact field set, so the CLI flattens
// all three into one list for display rather than carrying three
// near-identical types through to the output formatter.
type Diagnostic struct {
	Source string `json:"source" yaml:"source"`
	Type   string `json:"type" yaml:"type"`
	Msg    string `json:"msg" yaml:"msg"`
}

// Result is everything one `celerc compile` invocation produces.
type Result struct {
	Comp        *comp.CompDoc `json:"comp" yaml:"comp"`
	Exec        *exec.ExecDoc `json:"exec" yaml:"exec"`
	Diagnostics []Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
}

func fromCompDiags(src []comp.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(src))
	for _, d := range src {
		out = append(out, Diagnostic{Source: d.Source, Type: d.Type, Msg: d.Msg})
	}
	return out
}

func fromPluginDiags(src []plugin.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(src))
	for _, d := range src {
		out = append(out, Diagnostic{Source: d.Source, Type: d.Type, Msg: d.Msg})
	}
	return out
}

func toCompDiags(src []plugin.Diagnostic) []comp.Diagnostic {
	out := make([]comp.Diagnostic, 0, len(src))
	for _, d := range src {
		out = append(out, comp.Diagnostic{Source: d.Source, Type: d.Type, Msg: d.Msg})
	}
	return out
}

var githubRawPrefix = regexp.MustCompile(`^https://raw\.githubusercontent\.com/([^/]+)/([^/]+)/([^/]+)/$`)

// cacheKeyFor derives the (owner, repo, path, reference) cache key (spec
// §4.14) from a project resource: local projects have no owner/repo, so
// Owner/Repo/Reference stay empty and Path carries the project-relative path.
func cacheKeyFor(rp celerpath.ResPath) cache.Key {
	if !rp.IsRemote() {
		return cache.Key{Path: rp.Path().String()}
	}
	if m := githubRawPrefix.FindStringSubmatch(rp.Prefix()); m != nil {
		return cache.Key{Owner: m[1], Repo: m[2], Reference: m[3], Path: rp.Path().String()}
	}
	return cache.Key{Path: rp.String()}
}

type cachedPrep struct {
	ctx         *prep.PrepCtx
	fingerprint string
}

// fingerprintOf combines the project manifest's and entry file's
// check-changed marks (spec §4.14 "at minimum project.yaml and the entry
// file"). A loader without ChangeProbe support degenerates to always
// reporting a fresh (empty) fingerprint, which is cache-safe: it just
// means every call misses and reloads.
func fingerprintOf(ctx context.Context, loader resource.Loader, projectRes resource.Resource, entryPath string) string {
	probe, ok := loader.(resource.ChangeProbe)
	if !ok {
		return ""
	}
	_, mark, err := probe.CheckChanged(ctx, projectRes.Path(), "")
	if err != nil {
		return ""
	}
	if entryPath == "" {
		return mark
	}
	entryUse := celerpath.ParseRef(entryPath)
	entryRes, err := projectRes.Resolve(entryUse)
	if err != nil {
		return mark
	}
	_, entryMark, err := probe.CheckChanged(ctx, entryRes.Path(), "")
	if err != nil {
		return mark
	}
	return mark + "|" + entryMark
}

// loadPrepCached runs Prep, reusing prepCache's entry when the project
// manifest and entry file both report NotModified via the loader's
// check-changed probe (spec §4.14's validity condition).
func loadPrepCached(ctx context.Context, loader resource.Loader, projectRes resource.Resource, entryPath string, s setting.Setting, prepCache *cache.PrepCache) (*prep.PrepCtx, error) {
	key := cacheKeyFor(projectRes.Path())
	fingerprint := fingerprintOf(ctx, loader, projectRes, entryPath)

	if v, ok := prepCache.Get(key); ok {
		if cp, ok := v.(cachedPrep); ok && fingerprint != "" && cp.fingerprint == fingerprint {
			return cp.ctx, nil
		}
	}

	pctx, err := prep.Load(ctx, projectRes, entryPath, s, prep.PluginOptions{}, nil)
	if err != nil {
		return nil, err
	}
	prepCache.Put(key, cachedPrep{ctx: pctx, fingerprint: fingerprint})
	return pctx, nil
}

// runPipeline drives Prep -> Pack -> Comp -> plugin host -> Exec for one
// project (spec §2/§5), wiring the plugin registry, the context cache,
// and a cooperative yield budget across phase boundaries.
func runPipeline(ctx context.Context, loader resource.Loader, projectRes resource.Resource, entryPath string, s setting.Setting, prepCache *cache.PrepCache, budget *runtime.Budget, promRegistry *prometheus.Registry) (*Result, *plugin.Host, error) {
	pctx, err := loadPrepCached(ctx, loader, projectRes, entryPath, s, prepCache)
	if err != nil {
		return nil, nil, fmt.Errorf("prep: %w", err)
	}
	if err := budget.YieldBudget(ctx); err != nil {
		return nil, nil, err
	}

	instances := make([]plugin.Instance, 0, len(pctx.Plugins))
	for _, inst := range pctx.Plugins {
		if !inst.Enabled {
			continue
		}
		if built, ok := plugin.NewBuiltIn(inst, pctx.StartTime, promRegistry); ok {
			instances = append(instances, built)
		}
	}
	host := plugin.NewHost(instances)

	packer := pack.New(s)
	routeBlob := packer.Expand(ctx, pctx.ProjectRes, pctx.RawRoute)
	if pctx.RouteBlob != nil {
		routeBlob = *pctx.RouteBlob
	}
	if err := budget.YieldBudget(ctx); err != nil {
		return nil, nil, err
	}

	beforeDiags := host.BeforeCompile()
	compiler := comp.NewCompiler(s, pctx.Meta, pctx.Config)
	doc := compiler.Compile(routeBlob)

	afterDiags := host.AfterCompile(&doc)
	doc.Diagnostics = append(doc.Diagnostics, toCompDiags(beforeDiags)...)
	doc.Diagnostics = append(doc.Diagnostics, toCompDiags(afterDiags)...)

	if err := budget.YieldBudget(ctx); err != nil {
		return nil, nil, err
	}

	execDoc := exec.NewExecutor().Execute(doc)
	execAfterDiags := host.AfterExecute(&execDoc)

	allDiags := fromCompDiags(doc.Diagnostics)
	allDiags = append(allDiags, fromPluginDiags(execAfterDiags)...)

	return &Result{Comp: &doc, Exec: &execDoc, Diagnostics: allDiags}, host, nil
}
