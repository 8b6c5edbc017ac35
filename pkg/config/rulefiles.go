package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Rule kinds. In TOML rule files the list lives under a top-level array of
// tables with this name, e.g. [[fill_patterns]].
const (
	KindFillPatterns = "fill_patterns"
	KindReplaceTexts = "replace_texts"
	KindSkipPatterns = "skip_patterns"
	KindInsertLines  = "insert_lines"
	KindPreProcessor = "pre_processor"
)

// DecodeRules decodes a rule list. The format follows the extension of name:
// .json and .yaml/.yml files hold a bare list, .toml files hold the list
// under the kind key.
func DecodeRules[T any](data []byte, name, kind string) ([]T, error) {
	var (
		out []T
		err error
	)
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		err = json.Unmarshal(data, &out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	case ".toml":
		var doc map[string][]T
		err = toml.Unmarshal(data, &doc)
		out = doc[kind]
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported rule file format: %s", name).
			WithDetail(errors.DetailPath, name).
			WithDetail(errors.DetailHint, "use a .json, .yaml, .yml or .toml file")
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", name).
			WithDetail(errors.DetailPath, name)
	}
	return out, nil
}
