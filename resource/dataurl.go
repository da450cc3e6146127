package resource

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	celerpath "github.com/celer-dev/celerc/path"
)

// mimeByExtension is a small fixed table; unknown extensions fall back to
// a generic octet-stream mime, matching the "loose best-effort" posture of
// the rest of the loader derivation layer.
var mimeByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

func mimeForPath(p celerpath.Path) string {
	segs := p.Segments()
	if len(segs) == 0 {
		return "application/octet-stream"
	}
	last := segs[len(segs)-1]
	if i := strings.LastIndexByte(last, '.'); i >= 0 {
		if mime, ok := mimeByExtension[strings.ToLower(last[i:])]; ok {
			return mime
		}
	}
	return "application/octet-stream"
}

// toDataURL builds a "data:<mime>;base64,<payload>" URL, grounded on
// original_source's compiler-base/src/util/data_url.rs::to_data_url_base64.
func toDataURL(p celerpath.Path, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeForPath(p), base64.StdEncoding.EncodeToString(data))
}

// BytesFromDataURL decodes a data: URL, supporting both base64 and
// URL-percent encodings, grounded on
// original_source's compiler-base/src/util/data_url.rs::bytes_from_data_url.
// This is the generic loader shim named in spec §4.2; the Loader
// implementations in this package do not call it.
func BytesFromDataURL(dataURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, fmt.Errorf("data url must start with 'data:'")
	}
	typeAndEncoding, data, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("data url has no data section")
	}
	if strings.HasSuffix(typeAndEncoding, ";base64") {
		return base64.StdEncoding.DecodeString(data)
	}
	decoded, err := url.QueryUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("invalid url-encoded data: %w", err)
	}
	return []byte(decoded), nil
}
