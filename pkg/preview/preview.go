// Package preview renders the line diff between a recorded script and its
// transformed form, used by dry runs.
package preview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 2

// Result is a rendered diff with its statistics.
type Result struct {
	Text    string
	Added   int
	Deleted int
}

// Changed reports whether the two sides differ.
func (r Result) Changed() bool {
	return r.Added > 0 || r.Deleted > 0
}

type line struct {
	op   diffmatchpatch.Operation
	text string
}

// Lines diffs before and after line by line. Runs of unchanged lines longer
// than twice the context are elided.
func Lines(name string, before, after []string, context int) Result {
	if context < 0 {
		context = DefaultContext
	}

	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(join(before), join(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var all []line
	res := Result{}
	for _, d := range diffs {
		for _, text := range split(d.Text) {
			all = append(all, line{op: d.Type, text: text})
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				res.Added++
			case diffmatchpatch.DiffDelete:
				res.Deleted++
			}
		}
	}
	if !res.Changed() {
		return res
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	elided := false
	for i, l := range all {
		if l.op == diffmatchpatch.DiffEqual && !nearChange(all, i, context) {
			if !elided {
				sb.WriteString("@@\n")
				elided = true
			}
			continue
		}
		elided = false
		sb.WriteString(prefix(l.op) + l.text + "\n")
	}
	res.Text = sb.String()
	return res
}

func nearChange(all []line, i, context int) bool {
	for j := i - context; j <= i+context; j++ {
		if j >= 0 && j < len(all) && all[j].op != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

func prefix(op diffmatchpatch.Operation) string {
	switch op {
	case diffmatchpatch.DiffInsert:
		return "+"
	case diffmatchpatch.DiffDelete:
		return "-"
	default:
		return " "
	}
}

// join terminates every line so the last one diffs like the others.
func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func split(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
