package lines

import (
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
)

// trailingWindow is how many final positions are checked for blank lines.
const trailingWindow = 5

// RemoveNoise drops blank lines near the end of the script, then removes
// double-line noise repeatedly until the line count stops changing or
// maxIter extra passes have run.
func RemoveNoise(script []string, skip []rules.SkipRule, maxIter int) []string {
	logger := logging.GetLogger("lines.noise")
	if maxIter <= 0 {
		maxIter = rules.DefaultNoiseMaxIterations
	}

	out := dropTrailingBlanks(script)
	count := len(out)
	out = noisePass(out, skip)

	iter := 0
	for iter < maxIter && len(out) != count {
		count = len(out)
		out = noisePass(out, skip)
		iter++
	}

	logger.Debug().
		Int("before", len(script)).
		Int("after", len(out)).
		Int("iterations", iter).
		Msg("Noise lines removed")
	return out
}

func dropTrailingBlanks(script []string) []string {
	n := len(script)
	out := make([]string, 0, n)
	for i, line := range script {
		if strings.TrimSpace(line) == "" && i > n-trailingWindow {
			continue
		}
		out = append(out, line)
	}
	return out
}

// noisePass drops the first line of every adjacent pair that a double-line
// skip rule marks as noise. The final line is always kept.
func noisePass(script []string, skip []rules.SkipRule) []string {
	if len(script) == 0 {
		return script
	}
	out := make([]string, 0, len(script))
	for i := 0; i < len(script)-1; i++ {
		cur := strings.TrimSpace(script[i])
		next := strings.TrimSpace(script[i+1])
		if isNoisePair(cur, next, skip) {
			continue
		}
		out = append(out, script[i])
	}
	return append(out, script[len(script)-1])
}

func isNoisePair(cur, next string, skip []rules.SkipRule) bool {
	for _, rule := range skip {
		if rule.Scope != rules.ScopeDoubleLine {
			continue
		}
		i := strings.Index(cur, rule.Pattern)
		j := strings.Index(next, rule.Pattern)
		if i < 0 || j < 0 {
			continue
		}
		if !rule.CompareTextBeforePattern || strings.EqualFold(cur[:i], next[:j]) {
			return true
		}
	}
	return false
}

// CollapseBlankLines keeps at most one blank line in any run of blank lines.
func CollapseBlankLines(script []string) []string {
	out := make([]string, 0, len(script))
	lastBlank := false
	for _, line := range script {
		blank := strings.TrimSpace(line) == ""
		if blank && lastBlank {
			continue
		}
		out = append(out, line)
		lastBlank = blank
	}
	return out
}
