package style

import (
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Renderer expands markup tags into styled text, or strips them when color
// is off.
type Renderer struct {
	styles Registry
	color  bool
	lg     *lipgloss.Renderer
}

// NewRenderer creates a renderer for w. Color is used when w is a terminal
// and NO_COLOR is unset.
func NewRenderer(w io.Writer) *Renderer {
	return NewRendererWithColor(w, ColorEnabled(w))
}

// NewRendererWithColor creates a renderer for w with color forced on or off.
func NewRendererWithColor(w io.Writer, color bool) *Renderer {
	return &Renderer{
		styles: DefaultRegistry,
		color:  color,
		lg:     lipgloss.NewRenderer(w),
	}
}

// Color reports whether tags are expanded into ANSI styles.
func (r *Renderer) Color() bool {
	return r.color
}

// Render processes markup text.
func (r *Renderer) Render(text string) string {
	return expand(text, r.styles, func(name, content string) string {
		if !r.color {
			return content
		}
		return r.styles.Get(name).Renderer(r.lg).Render(content)
	})
}

// Strip removes the markup tags of the built-in styles and keeps their content.
func Strip(text string) string {
	return expand(text, DefaultRegistry, func(_, content string) string { return content })
}

// expand replaces every [name]content[/name] span of a registered style
// until no tag is left.
func expand(text string, reg Registry, fn func(name, content string) string) string {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	for changed := true; changed; {
		changed = false
		for _, name := range names {
			re := regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(name) + `\](.*?)\[/` + regexp.QuoteMeta(name) + `\]`)
			next := re.ReplaceAllStringFunc(text, func(match string) string {
				return fn(name, re.FindStringSubmatch(match)[1])
			})
			if next != text {
				text = next
				changed = true
			}
		}
	}
	return text
}

// ColorEnabled reports whether w is a terminal that should receive color.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
