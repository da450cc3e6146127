package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUseObjectNotUse(t *testing.T) {
	assert.Equal(t, KindNotUse, ParseUseObject(map[string]any{"text": "hi"}).Kind)
	assert.Equal(t, KindNotUse, ParseUseObject(map[string]any{"use": "a", "other": "b"}).Kind)
	assert.Equal(t, KindNotUse, ParseUseObject("plain string").Kind)
	assert.Equal(t, KindNotUse, ParseUseObject(nil).Kind)
}

func TestParseRefAbsolute(t *testing.T) {
	u := ParseRef("/a/b")
	assert.Equal(t, KindAbsolute, u.Kind)
	assert.Equal(t, "a/b", u.Path.String())
}

func TestParseRefRelative(t *testing.T) {
	u := ParseRef("./a/b")
	assert.Equal(t, KindRelative, u.Kind)
	assert.Equal(t, []string{"a", "b"}, u.RelSegments)

	u = ParseRef("../a")
	assert.Equal(t, KindRelative, u.Kind)
	assert.Equal(t, []string{"..", "a"}, u.RelSegments)
}

func TestParseRefRemote(t *testing.T) {
	u := ParseRef("owner/repo/path/to/file.yaml")
	assert.Equal(t, KindRemote, u.Kind)
	assert.Equal(t, "owner", u.Owner)
	assert.Equal(t, "repo", u.Repo)
	assert.Equal(t, "main", u.Reference)
	assert.Equal(t, "path/to/file.yaml", u.Path.String())

	u = ParseRef("owner/repo/path:v1.2.3")
	assert.Equal(t, KindRemote, u.Kind)
	assert.Equal(t, "v1.2.3", u.Reference)
	assert.Equal(t, "path", u.Path.String())
}

func TestParseRefInvalid(t *testing.T) {
	for _, ref := range []string{"", "/a/", "./a/", "owner/repo/path/", "owner/repo/path:", "owner//path", "/"} {
		assert.Equal(t, KindInvalid, ParseRef(ref).Kind, ref)
	}
}
