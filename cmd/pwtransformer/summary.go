package pwtransformer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/config"
	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/style"
	"github.com/arthur-debert/pwtransformer/pkg/transformer"
)

// printRun writes one line per script, the dry-run diffs and the totals.
func printRun(w io.Writer, r *style.Renderer, res *transformer.Result, dryRun bool) {
	for _, f := range res.Files {
		switch {
		case !dryRun:
			fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgFileDone,
				display(f.Source), display(f.Script), f.Fields, f.Lines)))
		case !f.Preview.Changed():
			fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgFileUnchanged, display(f.Source))))
		default:
			fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgFileDryRun,
				display(f.Source), display(f.Script), f.Fields, f.Preview.Added, f.Preview.Deleted)))
			fmt.Fprint(w, r.Render(colorizeDiff(f.Preview.Text)))
		}
	}
	for _, fe := range res.Errors {
		fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgFileFailed, display(fe.Path), fe.Err.Error())))
		if hint := errorHint(fe.Err); hint != "" {
			fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgHint, hint)))
		}
	}

	fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgRunSummary, len(res.Files), len(res.Files)+len(res.Errors))))
	if dryRun {
		fmt.Fprintln(w, r.Render(MsgDryRunNotice))
	}
}

// printRules writes what a config directory resolved to.
func printRules(w io.Writer, r *style.Renderer, l *config.Loaded) {
	fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgRulesHeader, display(l.Dir))))
	if l.SettingsFile != "" {
		fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgRulesSettings, display(l.SettingsFile))))
	} else {
		fmt.Fprintln(w, r.Render(MsgRulesNoSettings))
	}

	rs := l.RuleSet
	counts := func(title string, rows [][2]interface{}) {
		fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgRulesSection, title)))
		for _, row := range rows {
			fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgRulesCountFormat, row[0], row[1])))
		}
	}
	counts("Rules", [][2]interface{}{
		{"fill", len(rs.Fill)},
		{"replace", len(rs.Replace)},
		{"insert", len(rs.Insert)},
		{"skip", len(rs.Skip)},
		{"preprocess", len(rs.PreProcessors)},
	})
	counts("Boilerplate lines", [][2]interface{}{
		{"prepend", len(rs.Boilerplate.Prepend)},
		{"test start", len(rs.Boilerplate.TestStart)},
		{"open portal", len(rs.Boilerplate.OpenPortal)},
		{"test end", len(rs.Boilerplate.TestEnd)},
	})
}

// colorizeDiff wraps each diff line in the markup of its kind.
func colorizeDiff(text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			sb.WriteString("[muted]" + line + "[/muted]")
		case strings.HasPrefix(line, "@@"):
			sb.WriteString("[hunk]" + line + "[/hunk]")
		case strings.HasPrefix(line, "+"):
			sb.WriteString("[added]" + line + "[/added]")
		case strings.HasPrefix(line, "-"):
			sb.WriteString("[deleted]" + line + "[/deleted]")
		default:
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintError writes err and its hint, if any, to w.
func PrintError(w io.Writer, err error) {
	r := style.NewRenderer(w)
	fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgErrorFormat, err.Error())))
	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(w, r.Render(fmt.Sprintf(MsgHint, hint)))
	}
}

func errorHint(err error) string {
	hint, _ := errors.GetErrorDetails(err)[errors.DetailHint].(string)
	return hint
}

// display shortens paths under the working directory.
func display(path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	if wd, err := filepath.Abs("."); err == nil {
		if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}
