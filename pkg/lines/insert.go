package lines

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/rs/zerolog"
)

const (
	// EgIDPlaceholder is replaced in inserted lines by a per-file counter so
	// repeated insertions declare distinct variables.
	EgIDPlaceholder   = "__%EG_ID%__"
	declarationPrefix = "const "
)

var (
	groupPlaceholder       = regexp.MustCompile(`__LINE__(\d+)__GROUP__(\d+)__`)
	getByTestIDPlaceholder = regexp.MustCompile(`__GET_BY_TEST_ID__(\d)__`)
)

// captures maps a window line offset and a group number to the captured text.
type captures map[[2]int]string

// InsertEngine applies insert rules to a script. It carries the generated
// variable counter, so use one engine per file.
type InsertEngine struct {
	rules  []rules.InsertRule
	egID   int
	logger zerolog.Logger
}

// NewInsertEngine creates an engine for one file.
func NewInsertEngine(insertRules []rules.InsertRule) *InsertEngine {
	return &InsertEngine{
		rules:  insertRules,
		logger: logging.GetLogger("lines.insert"),
	}
}

// Apply walks the script once. At each position the first rule whose whole
// window matches rewrites that window and the walk resumes after it; lines
// that start no match pass through unchanged.
func (e *InsertEngine) Apply(script []string) []string {
	out := make([]string, 0, len(script))
	for i := 0; i < len(script); {
		rule, caps, ok := e.match(script, i)
		if !ok {
			out = append(out, script[i])
			i++
			continue
		}
		n := len(rule.ExistingLines)
		e.logger.Trace().Int("line", i).Int("window", n).Msg("Insert rule matched")
		out = e.expand(out, script[i:i+n], rule, caps)
		i += n
	}
	return out
}

func (e *InsertEngine) match(script []string, i int) (*rules.InsertRule, captures, bool) {
	for r := range e.rules {
		rule := &e.rules[r]
		if caps, ok := matchWindow(script, i, rule); ok {
			return rule, caps, true
		}
	}
	return nil, nil, false
}

func matchWindow(script []string, i int, rule *rules.InsertRule) (captures, bool) {
	if i+len(rule.ExistingLines) > len(script) {
		return nil, false
	}
	caps := captures{}
	for x, pattern := range rule.ExistingLines {
		line := strings.TrimSpace(script[i+x])
		if rule.IsRegex {
			m := rule.Patterns[x].FindStringSubmatch(line)
			if m == nil {
				return nil, false
			}
			for g := 1; g < len(m); g++ {
				caps[[2]int{x, g}] = m[g]
			}
			continue
		}
		if !strings.Contains(strings.ToLower(line), strings.ToLower(pattern)) {
			return nil, false
		}
	}
	return caps, true
}

func (e *InsertEngine) expand(out, window []string, rule *rules.InsertRule, caps captures) []string {
	next := 0
	take := func() string {
		if next >= len(rule.InsertedLines) {
			return ""
		}
		tmpl := rule.InsertedLines[next]
		next++
		if rule.IsRegex {
			return resolveGroups(tmpl, caps)
		}
		return resolveTestIDs(tmpl, window)
	}

	for y, line := range window {
		if slices.Contains(rule.InsertAt, y) {
			out = e.emit(out, take())
		}
		if slices.Contains(rule.Remove, y) {
			e.logger.Trace().Str("line", line).Msg("Removed line")
			continue
		}
		out = append(out, line)
	}

	// Offsets past the window append after it, in configured order.
	y := len(window)
	for _, at := range rule.InsertAt {
		if at == y {
			out = e.emit(out, take())
			y++
		}
	}
	return out
}

// emit numbers generated declarations and appends non-empty lines.
func (e *InsertEngine) emit(out []string, line string) []string {
	if line == "" {
		return out
	}
	if strings.Contains(line, EgIDPlaceholder) {
		if strings.HasPrefix(strings.TrimSpace(line), declarationPrefix) {
			e.egID++
		}
		suffix := ""
		if e.egID > 1 {
			suffix = strconv.Itoa(e.egID)
		}
		line = strings.ReplaceAll(line, EgIDPlaceholder, suffix)
	}
	e.logger.Trace().Str("line", line).Int("egId", e.egID).Msg("Line inserted")
	return append(out, line)
}

func resolveGroups(tmpl string, caps captures) string {
	return groupPlaceholder.ReplaceAllStringFunc(tmpl, func(ph string) string {
		m := groupPlaceholder.FindStringSubmatch(ph)
		x, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		if v, ok := caps[[2]int{x, g}]; ok {
			return v
		}
		return ph
	})
}

func resolveTestIDs(tmpl string, window []string) string {
	return getByTestIDPlaceholder.ReplaceAllStringFunc(tmpl, func(ph string) string {
		idx, _ := strconv.Atoi(getByTestIDPlaceholder.FindStringSubmatch(ph)[1])
		if idx >= len(window) {
			return ph
		}
		if m := rules.GetByTestIDInLinePattern.FindStringSubmatch(window[idx]); m != nil && m[1] != "" {
			return m[1]
		}
		return ph
	})
}
