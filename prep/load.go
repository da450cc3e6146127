package prep

import (
	"context"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/pack"
	celerpath "github.com/celer-dev/celerc/path"
	"github.com/celer-dev/celerc/preset"
	"github.com/celer-dev/celerc/resource"
)

func defaultNow() time.Time { return time.Now() }

// EarlyHook lets a caller rewrite the loaded plugin instances (spec §4.9
// step 4) without prep importing plugin, which itself imports prep for
// PluginInstance. A nil hook is a no-op.
type EarlyHook func(instances []PluginInstance) []PluginInstance

// nowFunc is overridden in tests so PrepCtx.StartTime is deterministic.
var nowFunc = defaultNow

// Load runs the Prep phase (spec §4.9): it loads the root project
// manifest, optionally overlays an entry-point manifest, resolves every
// `title`/`map`/`icons`/`tags`/`presets`/`plugins` property (following
// `use:` to leaves, fatally on failure per spec §7), runs the plugin
// early hook, applies user plugin options, and returns the context. The
// `route:` property is left unexpanded for Pack (spec §4.9 step 6).
func Load(ctx context.Context, projectRes resource.Resource, entryPath string, s Setting, opts PluginOptions, earlyHook EarlyHook) (*PrepCtx, error) {
	packer := pack.New(s)

	rootAny, err := projectRes.LoadStructured(ctx)
	if err != nil {
		return nil, wrapLoadErr("project", err)
	}
	root, ok := resource.ShallowMap(rootAny)
	if !ok {
		return nil, newError(ErrInvalidFormat, "project", nil)
	}

	if entryPath != "" {
		entryUse := celerpath.ParseRef(entryPath)
		if entryUse.Kind == celerpath.KindInvalid {
			return nil, newError(ErrInvalidPath, "entry", nil)
		}
		entryRes, err := projectRes.Resolve(entryUse)
		if err != nil {
			return nil, newError(ErrInvalidPath, "entry", err)
		}
		entryAny, err := entryRes.LoadStructured(ctx)
		if err != nil {
			return nil, wrapLoadErr("entry", err)
		}
		entryMap, ok := resource.ShallowMap(entryAny)
		if !ok {
			return nil, newError(ErrInvalidFormat, "entry", nil)
		}
		if err := mergo.Merge(&root, entryMap, mergo.WithOverride); err != nil {
			return nil, newError(ErrInvalidFormat, "entry", err)
		}
	}

	title, ok := root["title"].(string)
	if !ok || title == "" {
		return nil, newError(ErrMissingProperty, "title", nil)
	}
	version, ok := root["version"].(string)
	if !ok || version == "" {
		return nil, newError(ErrMissingProperty, "version", nil)
	}

	b := newBuilder()
	if err := b.apply(ctx, packer, projectRes, root); err != nil {
		return nil, err
	}
	if rawConfigList, ok := root["config"].([]any); ok {
		for _, entry := range rawConfigList {
			resolved, err := packer.Resolve(ctx, projectRes, entry)
			if err != nil {
				return nil, asPrepErr(err)
			}
			entryMap, ok := resource.ShallowMap(resolved)
			if !ok {
				return nil, newError(ErrInvalidFormat, "config", nil)
			}
			if err := b.apply(ctx, packer, projectRes, entryMap); err != nil {
				return nil, err
			}
		}
	}

	instances := b.plugins
	if earlyHook != nil {
		instances = earlyHook(instances)
	}
	instances = applyPluginOptions(instances, opts)

	presetsRegistry := preset.NewRegistry(b.presets)
	presetsRegistry.OptimizeAll()

	return &PrepCtx{
		StartTime: nowFunc(),
		Config: RouteConfig{
			Title:   title,
			Version: version,
			Map:     b.mapMeta,
			Icons:   b.icons,
			Tags:    b.tags,
		},
		Meta: CompilerMetadata{
			Presets:             presetsRegistry,
			Plugins:             instances,
			DefaultIconPriority: b.defaultIconPriority,
		},
		Plugins:    instances,
		EntryPath:  entryPath,
		RawRoute:   root["route"],
		Setting:    s,
		ProjectRes: projectRes,
	}, nil
}

// applyPluginOptions removes user-blacklisted ids then appends
// user-added instances (spec §4.9 step 5).
func applyPluginOptions(instances []PluginInstance, opts PluginOptions) []PluginInstance {
	removed := make(map[string]bool, len(opts.Remove))
	for _, id := range opts.Remove {
		removed[id] = true
	}
	out := make([]PluginInstance, 0, len(instances)+len(opts.Add))
	for _, inst := range instances {
		if !removed[inst.ID] {
			out = append(out, inst)
		}
	}
	for _, inst := range opts.Add {
		inst.FromUser = true
		inst.Enabled = true
		out = append(out, inst)
	}
	return out
}

// builder accumulates the `map`/`icons`/`tags`/`presets`/`plugins`
// properties across the root manifest and every `config:` list entry
// (spec §4.9 step 3), matching the original `RouteMetadataBuilder`'s
// duplicate-map detection (pack_config.rs).
type builder struct {
	mapMeta             *MapMetadata
	icons               map[string]string
	tags                map[string]TagMetadata
	presets             map[string]*preset.Preset
	plugins             []PluginInstance
	defaultIconPriority int
}

func newBuilder() *builder {
	return &builder{
		icons:   map[string]string{},
		tags:    map[string]TagMetadata{},
		presets: map[string]*preset.Preset{},
	}
}

func (b *builder) apply(ctx context.Context, packer *pack.Packer, res resource.Resource, m map[string]any) error {
	if v, ok := m["map"]; ok {
		if b.mapMeta != nil {
			return newError(ErrDuplicateMap, "map", nil)
		}
		resolved, err := packer.Resolve(ctx, res, v)
		if err != nil {
			return asPrepErr(err)
		}
		mm, err := decodeMapMetadata(resolved)
		if err != nil {
			return err
		}
		b.mapMeta = mm
	}

	if rawIcons, ok := m["icons"]; ok {
		if v, ok := resource.ShallowMap(rawIcons); ok {
			for name, iv := range v {
				url, err := resolveIcon(ctx, res, iv)
				if err != nil {
					return err
				}
				b.icons[name] = url
			}
		}
	}

	if v, ok := m["tags"]; ok {
		resolved, err := packer.Resolve(ctx, res, v)
		if err != nil {
			return asPrepErr(err)
		}
		tagMap, ok := resource.ShallowMap(resolved)
		if ok {
			for name, tv := range tagMap {
				var dto struct {
					SplitType string `mapstructure:"split-type"`
				}
				if err := mapstructure.Decode(resource.ToPlainAny(tv), &dto); err == nil {
					b.tags[name] = TagMetadata{SplitType: dto.SplitType}
				}
			}
		}
	}

	if rawPresets, ok := m["presets"]; ok {
		v, _ := resource.ShallowMap(rawPresets)
		for name, pv := range v {
			resolved, err := packer.Resolve(ctx, res, pv)
			if err != nil {
				return asPrepErr(err)
			}
			p, ok := preset.CompilePreset(resolved)
			if !ok {
				return newError(ErrInvalidFormat, "presets."+name, nil)
			}
			b.presets[name] = &p
		}
	}

	if v, ok := m["plugins"].([]any); ok {
		for _, pv := range v {
			resolved, err := packer.Resolve(ctx, res, pv)
			if err != nil {
				return asPrepErr(err)
			}
			inst, err := decodePluginInstance(resolved)
			if err != nil {
				return err
			}
			b.plugins = append(b.plugins, inst)
		}
	}

	if v, ok := m["map-icon-priority"]; ok {
		if n, ok := v.(float64); ok {
			b.defaultIconPriority = int(n)
		} else if n, ok := v.(int); ok {
			b.defaultIconPriority = n
		}
	}

	return nil
}

func resolveIcon(ctx context.Context, res resource.Resource, iv any) (string, error) {
	use := pack.DetectUse(iv)
	switch use.Kind {
	case celerpath.KindInvalid:
		return "", newError(ErrInvalidUse, "icons", nil)
	case celerpath.KindRelative, celerpath.KindAbsolute, celerpath.KindRemote:
		iconRes, err := res.Resolve(use)
		if err != nil {
			return "", newError(ErrInvalidPath, "icons", err)
		}
		url, err := iconRes.LoadImageURL(ctx)
		if err != nil {
			return "", wrapLoadErr("icons", err)
		}
		return url, nil
	default:
		return blob.FromJSON(iv).CoerceToString(), nil
	}
}

func decodeMapMetadata(v any) (*MapMetadata, error) {
	var dto struct {
		InitialCoord []float64 `mapstructure:"initial-coord"`
		InitialColor string    `mapstructure:"initial-color"`
		CoordMap     struct {
			Mapping2D []string `mapstructure:"mapping-2d"`
			Mapping3D []string `mapstructure:"mapping-3d"`
		} `mapstructure:"coord-map"`
	}
	if err := mapstructure.Decode(resource.ToPlainAny(v), &dto); err != nil {
		return nil, newError(ErrInvalidFormat, "map", err)
	}
	mm := &MapMetadata{InitialColor: dto.InitialColor}
	coords := [3]*float64{&mm.InitialCoord.X, &mm.InitialCoord.Y, &mm.InitialCoord.Z}
	for i, c := range dto.InitialCoord {
		if i >= len(coords) {
			break
		}
		*coords[i] = c
	}
	for i := 0; i < len(mm.CoordMap.Mapping2D) && i < len(dto.CoordMap.Mapping2D); i++ {
		a, ok := ParseAxis(dto.CoordMap.Mapping2D[i])
		if !ok {
			return nil, newError(ErrInvalidFormat, "map.coord-map.mapping-2d", nil)
		}
		mm.CoordMap.Mapping2D[i] = a
	}
	for i := 0; i < len(mm.CoordMap.Mapping3D) && i < len(dto.CoordMap.Mapping3D); i++ {
		a, ok := ParseAxis(dto.CoordMap.Mapping3D[i])
		if !ok {
			return nil, newError(ErrInvalidFormat, "map.coord-map.mapping-3d", nil)
		}
		mm.CoordMap.Mapping3D[i] = a
	}
	return mm, nil
}

func decodePluginInstance(v any) (PluginInstance, error) {
	var dto struct {
		ID      string `mapstructure:"id"`
		Script  string `mapstructure:"script"`
		Options any    `mapstructure:"options"`
	}
	// Shallow only: dto.Options is typed any, so mapstructure passes it
	// through untouched, leaving any nested *resource.OrderedMap intact
	// for blob.FromJSON below to preserve property order.
	shallow, _ := resource.ShallowMap(v)
	var decodeSrc any = v
	if shallow != nil {
		decodeSrc = shallow
	}
	if err := mapstructure.Decode(decodeSrc, &dto); err != nil {
		return PluginInstance{}, newError(ErrInvalidFormat, "plugins", err)
	}
	kind := PluginBuiltIn
	id := dto.ID
	if dto.Script != "" {
		kind = PluginScript
		id = dto.Script
	}
	if id == "" {
		return PluginInstance{}, newError(ErrMissingProperty, "plugins[].id", nil)
	}
	return PluginInstance{
		ID:      id,
		Source:  kind,
		Props:   blob.Walk(blob.FromJSON(dto.Options), nil),
		Enabled: true,
	}, nil
}

// asPrepErr wraps a pack.Error (fatal at Prep time) as a prep.Error so
// callers of Load only ever see one error type.
func asPrepErr(err error) error {
	if pe, ok := err.(*pack.Error); ok {
		switch pe.Kind {
		case pack.ErrInvalidUse:
			return newError(ErrInvalidUse, "", pe)
		case pack.ErrInvalidPath:
			return newError(ErrInvalidPath, "", pe)
		case pack.ErrFailToLoadFile:
			return newError(ErrFailToLoadFile, "", pe)
		case pack.ErrFailToLoadURL:
			return newError(ErrFailToLoadURL, "", pe)
		case pack.ErrUnknownFormat:
			return newError(ErrUnknownFormat, "", pe)
		default:
			return newError(ErrInvalidFormat, "", pe)
		}
	}
	return err
}

func wrapLoadErr(prop string, err error) error {
	if rerr, ok := err.(*resource.Error); ok {
		switch rerr.Kind {
		case resource.ErrUnknownFormat:
			return newError(ErrUnknownFormat, prop, err)
		case resource.ErrInvalidUTF8:
			return newError(ErrInvalidUTF8, prop, err)
		case resource.ErrInvalidFormat:
			return newError(ErrInvalidFormat, prop, err)
		case resource.ErrFailToLoadURL:
			return newError(ErrFailToLoadURL, prop, err)
		default:
			return newError(ErrFailToLoadFile, prop, err)
		}
	}
	return newError(ErrFailToLoadFile, prop, err)
}
