package style_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/pwtransformer/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	for _, name := range []string{"title", "success", "error", "warning", "muted", "path", "count", "added", "deleted", "hunk", "hint"} {
		_, ok := style.DefaultRegistry[name]
		assert.True(t, ok, name)
	}
	assert.True(t, style.DefaultRegistry.Get("success").GetBold())
	assert.False(t, style.DefaultRegistry.Get("undefined").GetBold())
}

func TestParseStyles(t *testing.T) {
	reg, err := style.ParseStyles([]byte(`
colors:
  brand:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  loud:
    bold: true
    underline: true
    foreground: brand
  ghost:
    foreground: missing
    paddingLeft: 2
`))
	require.NoError(t, err)
	assert.True(t, reg.Get("loud").GetBold())
	assert.True(t, reg.Get("loud").GetUnderline())
	assert.Equal(t, 2, reg.Get("ghost").GetPaddingLeft())

	_, err = style.ParseStyles([]byte("styles: ["))
	assert.Error(t, err)
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single", "[success]done[/success]", "done"},
		{"several", "[count]2[/count] files, [error]1[/error] failed", "2 files, 1 failed"},
		{"nested", "[title]Run [count]3[/count][/title]", "Run 3"},
		{"unknown tag kept", "[nope]x[/nope]", "[nope]x[/nope]"},
		{"script brackets kept", "setInputFiles(['a', 'b'])", "setInputFiles(['a', 'b'])"},
		{"multi line", "[muted]a\nb[/muted]", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, style.Strip(tt.in))
		})
	}
}

func TestRenderer(t *testing.T) {
	var buf bytes.Buffer

	plain := style.NewRendererWithColor(&buf, false)
	assert.False(t, plain.Color())
	assert.Equal(t, "3 files", plain.Render("[count]3[/count] files"))

	colored := style.NewRendererWithColor(&buf, true)
	assert.True(t, colored.Color())
	out := colored.Render("[success]ok[/success]")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "[success]")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, style.ColorEnabled(&buf), "non-file writers never get color")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, style.NewRenderer(&buf).Color())
}
