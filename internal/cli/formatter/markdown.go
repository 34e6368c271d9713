package formatter

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached per wrap width.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, r)
	return r, nil
}

// RenderMarkdown renders a project or step description. When rendering
// fails the source text is returned unchanged; an empty description renders
// as a dim placeholder.
func RenderMarkdown(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return Dim("No description")
	}
	if width < 20 {
		width = 20
	}
	r, err := markdownRenderer(width)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimSpace(out)
}
