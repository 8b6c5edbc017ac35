package rules

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/textutil"
)

// DefaultNoiseMaxIterations bounds the noise filter's fixed-point loop.
const DefaultNoiseMaxIterations = 10

// Markers are the delimiter strings recognized in recorded scripts.
type Markers struct {
	TestStart                 string `koanf:"test_start"`
	TestCaseNameMatcher       string `koanf:"test_case_name_matcher"`
	CompleteTestFileName      string `koanf:"complete_test_file_name"`
	DataSourcePathPlaceholder string `koanf:"data_source_path_placeholder"`
	Fill                      string `koanf:"fill"`
	ClickMethod               string `koanf:"click_method"`
	ContentFrame              string `koanf:"content_frame"`
	ToContainText             string `koanf:"to_contain_text"`
	ToHaveValue               string `koanf:"to_have_value"`
	SetInputFiles             string `koanf:"set_input_files"`
	SetMultipleInputFiles     string `koanf:"set_multiple_input_files"`
	ExpectTextWithParam       string `koanf:"expect_text_with_param"`
	S3UtilsInit               string `koanf:"s3_utils_init"`
	SelectOption              string `koanf:"select_option"`
	PressSequentially         string `koanf:"press_sequentially"`
	SendMail                  string `koanf:"send_mail"`
	GetByTestID               string `koanf:"get_by_test_id"`
	CKEditorStart             string `koanf:"ck_editor_start"`
	CopyPasteInContentSource  string `koanf:"copy_paste_in_content_source"`
}

// FillTriggers are the markers that route a line through the fill handler.
func (m Markers) FillTriggers() []string {
	return []string{
		m.Fill,
		m.SetInputFiles,
		m.SetMultipleInputFiles,
		m.SelectOption,
		m.PressSequentially,
		m.SendMail,
		m.GetByTestID,
		m.CopyPasteInContentSource,
	}
}

// Upload holds the statement templates emitted for file uploads.
type Upload struct {
	SingleFilePath   string `koanf:"single_file_path"`
	SingleFileInput  string `koanf:"single_file_input"`
	MultiFilePath    string `koanf:"multi_file_path"`
	MultiFileInput   string `koanf:"multi_file_input"`
	ExternalizedData string `koanf:"externalized_data"`
}

// Boilerplate holds the line resources spliced into every output script.
type Boilerplate struct {
	Prepend    []string
	TestStart  []string
	OpenPortal []string
	TestEnd    []string
}

// Options carries the non-list settings of a RuleSet.
type Options struct {
	Markers            Markers
	Upload             Upload
	NoiseMaxIterations int
}

// FillRule externalizes the value of a fill-like call.
type FillRule struct {
	Regex             *regexp.Regexp
	KeyGroup          int
	ValueGroup        int
	FixedKey          string
	ConstantKeys      []string
	NonUniqueKeys     []string
	Frameset          bool
	ContentFrame      bool
	IgnorePathInValue bool
	FileUpload        bool
	MultiFileUpload   bool
	Delay             bool
	Locators          []textutil.Pair
}

// ReplaceRule rewrites literals found between Prefix and Suffix.
type ReplaceRule struct {
	Prefix string
	Suffix string
	// PrefixRegex is set when Prefix is itself a regex whose first group
	// yields the concrete prefix text.
	PrefixRegex         *regexp.Regexp
	ConstantKeys        []string
	NewPageLaunchers    []string
	NonUniquenessText   []string
	IgnoredValues       []string
	DynamicIDKeys       []string
	UseDynamicIDs       bool
	WholeWord           bool
	StripTrailingDate   bool
	PreferredField      string
	PreferredFieldGuard string
}

// Scope is a skip rule's window size.
type Scope string

const (
	ScopeSingleLine Scope = "singleLine"
	ScopeDoubleLine Scope = "doubleLine"
)

// SkipRule marks noise lines.
type SkipRule struct {
	Pattern                  string
	Scope                    Scope
	CompareTextBeforePattern bool
}

// InsertRule matches a window of consecutive lines and rewrites it.
type InsertRule struct {
	ExistingLines []string
	// Patterns holds one compiled regex per existing line when IsRegex.
	Patterns      []*regexp.Regexp
	InsertedLines []string
	InsertAt      []int
	Remove        []int
	IsRegex       bool
}

// PreProcessorRule adds lines after the S3 init line for one named script.
type PreProcessorRule struct {
	FileName string
	Lines    []string
}

// RuleSet is the compiled, read-only configuration of a run.
type RuleSet struct {
	Markers            Markers
	Upload             Upload
	NoiseMaxIterations int
	Fill               []FillRule
	Replace            []ReplaceRule
	Skip               []SkipRule
	Insert             []InsertRule
	PreProcessors      []PreProcessorRule
	Boilerplate        Boilerplate
}

// Compile validates the raw sources and builds a RuleSet.
func Compile(src Sources, opts Options, bp Boilerplate) (*RuleSet, error) {
	logger := logging.GetLogger("rules")

	rs := &RuleSet{
		Markers:            opts.Markers,
		Upload:             opts.Upload,
		NoiseMaxIterations: opts.NoiseMaxIterations,
		Boilerplate:        bp,
	}
	if rs.NoiseMaxIterations <= 0 {
		rs.NoiseMaxIterations = DefaultNoiseMaxIterations
	}

	for i, fp := range src.Fill {
		rule, err := compileFill(fp)
		if err != nil {
			return nil, withIndex(err, "fill", i)
		}
		rs.Fill = append(rs.Fill, rule)
	}

	for i, rt := range src.Replace {
		rule, err := compileReplace(rt)
		if err != nil {
			return nil, withIndex(err, "replace", i)
		}
		rs.Replace = append(rs.Replace, rule)
	}

	for i, sp := range src.Skip {
		if sp.Pattern == "" {
			logger.Warn().Int("index", i).Msg("Skipping skip rule with empty pattern")
			continue
		}
		scope := Scope(sp.PatternScope)
		if scope == "" {
			scope = ScopeSingleLine
		}
		rs.Skip = append(rs.Skip, SkipRule{
			Pattern:                  sp.Pattern,
			Scope:                    scope,
			CompareTextBeforePattern: bool(sp.CompareTextBeforePattern),
		})
	}

	for i, il := range src.Insert {
		rule, err := compileInsert(il)
		if err != nil {
			return nil, withIndex(err, "insert", i)
		}
		if len(rule.ExistingLines) == 0 {
			logger.Warn().Int("index", i).Msg("Skipping insert rule without existing lines")
			continue
		}
		rs.Insert = append(rs.Insert, rule)
	}

	for _, pp := range src.PreProcessors {
		if pp.TestScriptName == "" || textutil.IsBlank(pp.LinesToBeInserted) {
			continue
		}
		sep := pp.Separator
		if sep == "" {
			sep = ","
		}
		rs.PreProcessors = append(rs.PreProcessors, PreProcessorRule{
			FileName: pp.TestScriptName,
			Lines:    strings.Split(pp.LinesToBeInserted, sep),
		})
	}

	logger.Debug().
		Int("fill", len(rs.Fill)).
		Int("replace", len(rs.Replace)).
		Int("skip", len(rs.Skip)).
		Int("insert", len(rs.Insert)).
		Int("preProcessors", len(rs.PreProcessors)).
		Msg("Rule set compiled")

	return rs, nil
}

func withIndex(err error, kind string, i int) error {
	var te *errors.TransformError
	if e, ok := err.(*errors.TransformError); ok {
		te = e
	} else {
		te = errors.Wrap(err, errors.ErrRuleInvalid, "invalid rule")
	}
	return te.WithDetail("kind", kind).WithDetail("index", i)
}

func compileFill(fp FillPattern) (FillRule, error) {
	if fp.Regex == "" {
		return FillRule{}, errors.New(errors.ErrRuleInvalid, "fill rule has an empty regex")
	}
	// Dot matches newlines, as the recorder tooling expects.
	re, err := CompileCached("(?s)" + fp.Regex)
	if err != nil {
		return FillRule{}, err
	}
	rule := FillRule{
		Regex:             re,
		KeyGroup:          int(fp.GroupNoForKey),
		ValueGroup:        int(fp.GroupNoForValue),
		FixedKey:          fp.KeyToUse,
		ConstantKeys:      textutil.SplitList(fp.KeysToBeTreatedAsConstants, ","),
		NonUniqueKeys:     textutil.SplitList(fp.NonUniqueKeys, ","),
		Frameset:          bool(fp.IsKeyFrameset),
		ContentFrame:      bool(fp.IsContentFrameHandlingNeeded),
		IgnorePathInValue: bool(fp.IgnorePathInValue),
		FileUpload:        bool(fp.IsFileUpload),
		MultiFileUpload:   bool(fp.IsMultipleFileUpload),
		Delay:             bool(fp.IsDelay),
		Locators:          textutil.ParsePairs(fp.KeysForLocatorInFileUpload),
	}
	groups := re.NumSubexp()
	if rule.ValueGroup < 0 || rule.ValueGroup > groups ||
		(rule.FixedKey == "" && (rule.KeyGroup < 0 || rule.KeyGroup > groups)) {
		return FillRule{}, errors.Newf(errors.ErrRuleInvalid,
			"fill rule %q references a missing capture group", fp.Regex)
	}
	return rule, nil
}

func compileReplace(rt ReplaceText) (ReplaceRule, error) {
	rule := ReplaceRule{
		Prefix:              rt.DataPrependedBy,
		Suffix:              rt.DataAppendedBy,
		ConstantKeys:        textutil.SplitList(rt.KeysToBeTreatedAsConstants, ","),
		NewPageLaunchers:    textutil.SplitList(rt.KeysAsNewPageLaunchers, ","),
		NonUniquenessText:   textutil.SplitList(rt.MatchTextForNonUniqueness, ","),
		IgnoredValues:       textutil.SplitList(rt.ValuesToBeIgnored, ","),
		DynamicIDKeys:       textutil.SplitList(rt.KeysWithContainTextOrToHaveValueAsDynamicIds, ","),
		UseDynamicIDs:       bool(rt.ReplaceWithDynamicIds),
		WholeWord:           bool(rt.IsWholeWordMatch),
		StripTrailingDate:   bool(rt.RemoveDateAtTheEnd),
		PreferredField:      strings.TrimSpace(rt.PreferredFieldForMatchingText),
		PreferredFieldGuard: rt.MatchTextToUsePreferredField,
	}
	if bool(rt.IsRegex) && rt.DataPrependedBy != "" {
		re, err := CompileCached(rt.DataPrependedBy)
		if err != nil {
			return ReplaceRule{}, err
		}
		rule.PrefixRegex = re
	}
	return rule, nil
}

func compileInsert(il InsertLines) (InsertRule, error) {
	sep := ","
	if il.Separator != nil {
		sep = *il.Separator
	}
	if sep == `\|` {
		sep = "|"
	}
	rule := InsertRule{
		ExistingLines: splitNonEmpty(il.ExistingLines, sep),
		InsertedLines: splitNonEmpty(il.LinesToBeInserted, sep),
		InsertAt:      textutil.ParseIntList(il.InsertAt),
		Remove:        textutil.ParseIntList(il.RemoveLines),
		IsRegex:       bool(il.IsRegex),
	}
	if rule.IsRegex {
		for _, line := range rule.ExistingLines {
			re, err := CompileCached(line)
			if err != nil {
				return InsertRule{}, err
			}
			rule.Patterns = append(rule.Patterns, re)
		}
	}
	return rule, nil
}

// splitNonEmpty splits on sep; an empty field yields no items. An empty
// separator keeps the whole field as one item.
func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	if sep == "" {
		return []string{s}
	}
	return strings.Split(s, sep)
}
