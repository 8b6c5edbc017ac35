package handlers

import (
	"regexp"
	"slices"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/datamap"
	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/arthur-debert/pwtransformer/pkg/textutil"
	"github.com/rs/zerolog"
)

const (
	commentPrefix  = "//"
	dynamicIDBase  = "dynamicId"
	textContent    = ".textContent()"
	dataValueAttr  = ".getAttribute('data-value')"
	assertionClose = "')"
	literalCapture = `([^\\']+)`

	// maxOccurrences bounds how many delimited literals one rule rewrites
	// in a single line.
	maxOccurrences = 3
)

// Splicing a reference into a string literal leaves empty-string
// concatenations and stray commas behind; these patterns tidy them up.
var cleanups = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`''\s*\+`), ""},
	{regexp.MustCompile(`\+\s*''`), ""},
	{regexp.MustCompile(`(\))\s*,\s*(\))`), "$1$2"},
	{regexp.MustCompile(`(\))\s*,\s*(;)`), "$1$2"},
	{regexp.MustCompile(`(\))\s*,\s*(\s*\))`), "$1$2"},
}

// Default applies every replace rule, in order, to the line and emits the
// result. It always ends a chain.
type Default struct{}

func (Default) Name() string { return DefaultName }

func (Default) Process(ctx *Context, line string) (string, bool, error) {
	if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
		ctx.Emit(line)
		return "", false, nil
	}

	r := &replacer{
		ctx:    ctx,
		input:  line,
		logger: logging.GetLogger("handlers.default"),
	}
	for i := range ctx.Rules.Replace {
		var (
			launched bool
			err      error
		)
		line, launched, err = r.apply(&ctx.Rules.Replace[i], line)
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrTransform, "replace rule %d failed", i)
		}
		if launched {
			return "", false, nil
		}
	}
	ctx.Emit(line)
	return "", false, nil
}

type replacer struct {
	ctx *Context
	// input is the line as the chain handed it to Default.
	input  string
	logger zerolog.Logger
}

// apply runs one rule. launched reports that the line and the open-portal
// snippet were emitted and no further rules should run.
func (r *replacer) apply(rule *rules.ReplaceRule, line string) (string, bool, error) {
	if rule.StripTrailingDate {
		line = textutil.StripTrailingDate(line)
	}

	prefix, matching, found := extract(rule, line)
	if !found {
		return line, false, nil
	}

	if textutil.HasAnyPrefix(matching, rule.DynamicIDKeys) {
		line = r.promoteDynamicID(rule, line)
	}

	if !isConstant(rule, matching) {
		var err error
		line, err = r.replace(rule, line, prefix, matching)
		if err != nil {
			return "", false, err
		}
	}

	markers := r.ctx.Rules.Markers
	portal := r.ctx.Rules.Boilerplate.OpenPortal
	if slices.Contains(rule.NewPageLaunchers, matching) && markers.ClickMethod != "" &&
		strings.HasSuffix(strings.TrimSpace(line), markers.ClickMethod) && len(portal) > 0 {
		r.logger.Debug().Str("key", matching).Msg("New page launcher, open portal injected")
		r.ctx.Emit(line)
		r.ctx.Emit(portal...)
		return line, true, nil
	}
	return line, false, nil
}

// extract finds the text between the rule's delimiters. A regex prefix is
// first resolved to the concrete text its first group captures.
func extract(rule *rules.ReplaceRule, line string) (prefix, matching string, found bool) {
	if rule.PrefixRegex != nil {
		if m := rule.PrefixRegex.FindStringSubmatch(line); len(m) > 1 && m[1] != "" {
			if matching, found = textutil.ExtractSubstring(line, m[1], rule.Suffix); found {
				return m[1], matching, true
			}
		}
	}
	matching, found = textutil.ExtractSubstring(line, rule.Prefix, rule.Suffix)
	return rule.Prefix, matching, found
}

func isConstant(rule *rules.ReplaceRule, matching string) bool {
	for _, c := range rule.ConstantKeys {
		if strings.EqualFold(c, matching) {
			return true
		}
	}
	return false
}

// promoteDynamicID turns an assertion on dynamic text into a declaration
// that reads the element's runtime value.
func (r *replacer) promoteDynamicID(rule *rules.ReplaceRule, line string) string {
	m := r.ctx.Rules.Markers
	marker, getter := "", ""
	switch {
	case m.ToContainText != "" && strings.Contains(line, m.ToContainText):
		marker, getter = m.ToContainText, textContent
	case m.ToHaveValue != "" && strings.Contains(line, m.ToHaveValue):
		marker, getter = m.ToHaveValue, dataValueAttr
	default:
		return line
	}

	inner, ok := textutil.ExtractSubstring(line, marker, rule.Suffix)
	if !ok {
		return line
	}
	name := r.ctx.State.DynamicIDs.Allocate(inner, dynamicIDBase)

	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	expr := textutil.ReplaceFirst(trimmed, marker+inner+assertionClose, getter)
	if m.ExpectTextWithParam != "" && strings.Contains(expr, m.ExpectTextWithParam) {
		expr = textutil.ReplaceFirst(expr, m.ExpectTextWithParam, " ")
		expr = textutil.ReplaceFirst(expr, "))"+getter, ")"+getter)
	}

	r.logger.Debug().Str("text", inner).Str("id", name).Msg("Dynamic id promoted")
	return indent + "const " + name + " = " + expr
}

func (r *replacer) replace(rule *rules.ReplaceRule, line, prefix, matching string) (string, error) {
	st := r.ctx.State
	switch {
	case rule.UseDynamicIDs && st.DynamicIDs.Has(matching):
		return r.wholeWord(rule, line, prefix, matching, st.DynamicIDs.Entries(), false), nil
	case rule.WholeWord:
		return r.wholeWord(rule, line, prefix, matching, st.Reverse.Entries(), true), nil
	case matching != "":
		return r.standard(rule, line, prefix, matching)
	}
	return line, nil
}

// wholeWord swaps the quoted literal for its reference only when a known
// value, in any letter case, appears bounded by the rule's delimiters. The
// literal is replaced as written on the line.
func (r *replacer) wholeWord(rule *rules.ReplaceRule, line, prefix, matching string, entries []datamap.Entry, preferred bool) string {
	upper := strings.ToUpper(line)
	for _, e := range entries {
		if !strings.Contains(upper, strings.ToUpper(prefix+e.Key+rule.Suffix)) {
			continue
		}
		ref := e.Value
		if preferred {
			ref = r.preferredRef(rule, e)
		}
		r.logger.Trace().Str("value", e.Key).Str("ref", ref).Msg("Whole word replaced")
		return textutil.ReplaceFirst(line, "'"+matching+"'", ref)
	}
	return line
}

// standard rewrites each delimited literal of the line. Up to maxOccurrences
// literals are handled when the prefix occurs more than once.
func (r *replacer) standard(rule *rules.ReplaceRule, line, prefix, matching string) (string, error) {
	re, err := rules.CompileCached(regexp.QuoteMeta(prefix) + literalCapture + regexp.QuoteMeta(rule.Suffix))
	if err != nil {
		return "", err
	}

	if strings.Index(line, prefix) == strings.LastIndex(line, prefix) || !re.MatchString(line) {
		return r.replaceMatching(rule, line, prefix, matching), nil
	}

	pos := 0
	for n := 0; n < maxOccurrences && pos < len(line); n++ {
		i := strings.Index(line[pos:], prefix)
		if i < 0 {
			break
		}
		pos += i
		m := re.FindStringSubmatch(line[pos:])
		if m == nil {
			break
		}
		line = r.replaceMatching(rule, line, prefix, m[1])
		pos++
	}
	return line, nil
}

// replaceMatching splices references to every known literal contained in
// matching into the string literal.
func (r *replacer) replaceMatching(rule *rules.ReplaceRule, line, prefix, matching string) string {
	replaced := matching
	startsWith, endsWith, changed := false, false, false
	nonUnique := textutil.ContainsAny(line, rule.NonUniquenessText...)

	for _, e := range r.ctx.State.Reverse.MatchingSubset(matching) {
		if slices.Contains(rule.IgnoredValues, e.Key) {
			continue
		}
		ref := r.preferredRef(rule, e)
		if nonUnique {
			ref = textutil.ReplaceFirst(ref, UniqueIndexSuffix, "")
		}

		switch {
		case strings.HasPrefix(replaced, e.Key):
			replaced = ref + " + '" + replaced[len(e.Key):]
			startsWith = true
		case strings.HasSuffix(replaced, e.Key):
			replaced = replaced[:len(replaced)-len(e.Key)] + "' + " + ref
			endsWith = true
		default:
			i := strings.LastIndex(replaced, e.Key)
			if i < 0 {
				continue
			}
			replaced = replaced[:i] + "' + " + ref + " + '" + replaced[i+len(e.Key):]
		}
		changed = true
		r.logger.Trace().Str("value", e.Key).Str("ref", ref).Msg("Literal replaced")
	}
	if !changed {
		return line
	}

	newPrefix, newSuffix := prefix, rule.Suffix
	if startsWith {
		newPrefix += "'+ "
	}
	if endsWith {
		newSuffix = " +'" + newSuffix
	}
	line = textutil.ReplaceFirst(line, prefix+matching+rule.Suffix, newPrefix+replaced+newSuffix)
	for _, c := range cleanups {
		line = c.re.ReplaceAllString(line, c.repl)
	}
	return line
}

// preferredRef points at the rule's preferred data field when the literal
// is that field's value and the guard text, if any, is on the input line.
func (r *replacer) preferredRef(rule *rules.ReplaceRule, e datamap.Entry) string {
	if rule.PreferredField == "" {
		return e.Value
	}
	v, ok := r.ctx.State.Data.Get(rule.PreferredField)
	if !ok || v != e.Key {
		return e.Value
	}
	if rule.PreferredFieldGuard != "" && !strings.Contains(r.input, rule.PreferredFieldGuard) {
		return e.Value
	}
	return DataPrefix + rule.PreferredField
}
