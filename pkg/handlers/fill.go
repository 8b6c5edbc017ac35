package handlers

import (
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/arthur-debert/pwtransformer/pkg/textutil"
)

const (
	// UniqueIndexSuffix makes a data reference unique per run.
	UniqueIndexSuffix = " + uniqueIndex"
	// DataPrefix starts every data reference.
	DataPrefix = "data."

	delayOption   = ", { delay: 100 }"
	filePathVar   = "filePath"
	locatorAnchor = "page."
)

// Fill externalizes the literal passed to fill-like calls (fill,
// selectOption, setInputFiles, ...) into the data record.
type Fill struct{}

func (Fill) Name() string { return FillName }

func (Fill) Process(ctx *Context, line string) (string, bool, error) {
	trimmed := strings.TrimSpace(line)
	for i := range ctx.Rules.Fill {
		rule := &ctx.Rules.Fill[i]
		m := rule.Regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		key := rule.FixedKey
		if key == "" {
			key = m[rule.KeyGroup]
		}
		return fill(ctx, rule, line, key, m[rule.ValueGroup])
	}
	return line, true, nil
}

func fill(ctx *Context, rule *rules.FillRule, line, key, value string) (string, bool, error) {
	logger := logging.GetLogger("handlers.fill")
	st := ctx.State

	if slices.Contains(rule.ConstantKeys, key) {
		logger.Trace().Str("key", key).Msg("Constant key left as is")
		return line, true, nil
	}

	if id, ok := st.DynamicIDs.Get(value); ok {
		return textutil.ReplaceFirst(line, "'"+value+"'", id), true, nil
	}

	stored := value
	if rule.IgnorePathInValue {
		stored = textutil.FilenameFromPath(value)
	}

	ref, seen := st.Reverse.Get(stored)
	dataKey := ""
	if !seen || rule.FileUpload {
		jsonKey := textutil.KeyForJSON(key)
		if rule.Frameset {
			jsonKey = textutil.KeyFromFrameset(key)
		}
		dataKey = st.Data.PutUnique(jsonKey, stored)
		ref = DataPrefix + dataKey
		if !slices.Contains(rule.NonUniqueKeys, key) {
			ref += UniqueIndexSuffix
		}
		logger.Debug().Str("key", dataKey).Str("value", stored).Msg("Value externalized")
	}

	if rule.FileUpload {
		emitUpload(ctx, rule, line, dataKey)
		st.Reverse.Put(stored, DataPrefix+dataKey)
		return "", false, nil
	}

	delay := ""
	if rule.Delay {
		delay = delayOption
	}

	markers := ctx.Rules.Markers
	if rule.ContentFrame && markers.ContentFrame != "" && strings.Contains(line, markers.ContentFrame) {
		if next, ok := ctx.NextLine(); ok && markers.CKEditorStart != "" &&
			strings.EqualFold(strings.TrimSpace(next), markers.CKEditorStart) {
			st.Reverse.Put(stored, ref)
			ctx.Emit(" ")
			return "", false, nil
		}
		line = textutil.ReplaceFirst(line,
			".fill('"+value+"')",
			".pressSequentially("+ref+delayOption+")")
	} else {
		line = textutil.ReplaceFirst(line, "('"+value+"')", "("+ref+delay+")")
	}

	st.Reverse.Put(stored, ref)
	return line, true, nil
}

func emitUpload(ctx *Context, rule *rules.FillRule, line, dataKey string) {
	up := ctx.Rules.Upload
	st := ctx.State
	st.Uploads++
	pathVar := filePathVar + "_" + strconv.Itoa(st.Uploads)

	pathTmpl, inputTmpl := up.SingleFilePath, up.SingleFileInput
	if rule.MultiFileUpload {
		pathTmpl, inputTmpl = up.MultiFilePath, up.MultiFileInput
	}

	pathLine := textutil.ReplaceFirst(pathTmpl, up.ExternalizedData, DataPrefix+dataKey)
	pathLine = textutil.ReplaceFirst(pathLine, filePathVar, pathVar)
	inputLine := textutil.ReplaceFirst(inputTmpl, filePathVar, pathVar)

	trimmed := strings.TrimSpace(line)
	for _, loc := range rule.Locators {
		if loc.Key != "" && strings.Contains(trimmed, loc.Key) {
			inputLine = textutil.ReplaceFirst(inputLine, locatorAnchor,
				locatorAnchor+"getByTestId('"+loc.Value+"').")
			break
		}
	}

	logger := logging.GetLogger("handlers.fill")
	logger.Debug().
		Int("upload", st.Uploads).
		Str("key", dataKey).
		Msg("File upload rewritten")
	ctx.Emit(pathLine, inputLine)
}
