package rules

import (
	"regexp"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

const regexCacheSize = 256

// Patterns built from line content (standard replacement delimiters, resolved
// regex prefixes) repeat heavily across a run, so compiled forms are kept in
// a bounded cache shared by all transformations.
var regexCache *lru.Cache[string, *regexp.Regexp]

func init() {
	c, err := lru.New[string, *regexp.Regexp](regexCacheSize)
	if err != nil {
		panic(err)
	}
	regexCache = c
}

// CompileCached compiles pattern, reusing a previously compiled instance.
func CompileCached(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleInvalid, "invalid regular expression %q", pattern)
	}
	regexCache.Add(pattern, re)
	return re, nil
}

// Fixed patterns used by the handlers.
var (
	// TestCaseNamePattern captures the first single-quoted string of a test() line.
	TestCaseNamePattern = regexp.MustCompile(`'(.*?)'`)
	// GetByTestIDInLinePattern captures the test id of a getByTestId call.
	GetByTestIDInLinePattern = regexp.MustCompile(`.*getByTestId\('(.*?)'\).*`)
)
