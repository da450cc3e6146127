package plugin

import (
	"regexp"

	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/exec"
	"github.com/celer-dev/celerc/internal/util"
	"github.com/celer-dev/celerc/lang/richtext"
)

// linkPattern matches `[label] url` inside a `.link` tagged block, the
// same "capture, then substitute" shape as the teacher's
// `placeholderRegEx`/`ReplaceAllStringFunc` pairing in
// `internal/project/substitution.go`.
var linkPattern = regexp.MustCompile(`^\[([^\]]*)\]\s*(\S+)$`)

// LinkPlugin rewrites `.link` tagged blocks' text from `[label] url` into
// just `label`, attaching url as the block's Link (spec §4.13 "link").
type LinkPlugin struct{ NopRuntime }

// NewLinkPlugin returns the `link` built-in.
func NewLinkPlugin() *LinkPlugin { return &LinkPlugin{NopRuntime{id: "link"}} }

func (p *LinkPlugin) OnAfterCompile(doc *comp.CompDoc) error {
	for i := range doc.Preface {
		rewriteLinks(&doc.Preface[i].Text)
	}
	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			rewriteLinks(&doc.Route[si].Lines[li].Text)
		}
	}
	return nil
}

func (p *LinkPlugin) OnAfterExecute(doc *exec.ExecDoc) error {
	for i := range doc.Preface {
		rewriteLinks(&doc.Preface[i].Text)
	}
	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			rewriteLinks(&doc.Route[si].Lines[li].Text)
		}
	}
	return nil
}

func rewriteLinks(rt *richtext.RichText) {
	for i, block := range *rt {
		if block.Tag == nil || *block.Tag != "link" {
			continue
		}
		m := linkPattern.FindStringSubmatch(block.Text)
		if m == nil {
			continue
		}
		(*rt)[i].Text = m[1]
		(*rt)[i].Link = util.Ref(m[2])
	}
}
