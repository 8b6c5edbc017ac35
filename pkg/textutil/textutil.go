// Package textutil holds the small string helpers shared by the line
// engines and the handlers. Nothing here knows about rules or state.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonKeyChars    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	doubleQuoted   = regexp.MustCompile(`"(.*?)"`)
	endsWithDate   = regexp.MustCompile(`\s-\s\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
	locatorPairSep = regexp.MustCompile(`,\s*`)
)

// ExtractSubstring returns the text between the first occurrence of start and
// the first occurrence of end after it. ok is false when either is absent.
func ExtractSubstring(input, start, end string) (string, bool) {
	i := strings.Index(input, start)
	if i < 0 {
		return "", false
	}
	from := i + len(start)
	j := strings.Index(input[from:], end)
	if j < 0 {
		return "", false
	}
	return input[from : from+j], true
}

// KeyForJSON turns a locator key into a data-file field name. Keys with three
// or more dash separated parts keep only the last three, camel-cased
// (user-form-first-name -> formFirstName).
func KeyForJSON(input string) string {
	out := input
	if parts := strings.Split(input, "-"); len(parts) >= 3 {
		last := parts[len(parts)-3:]
		var b strings.Builder
		b.WriteString(last[0])
		for _, p := range last[1:] {
			b.WriteString(UpperFirst(p))
		}
		out = b.String()
	}
	return sanitizeKey(strings.ReplaceAll(out, `\`, ""))
}

// KeyFromFrameset derives a field name from a frame title written in double quotes.
func KeyFromFrameset(input string) string {
	if m := doubleQuoted.FindStringSubmatch(input); m != nil && m[1] != "" {
		return KeyForJSON(m[1])
	}
	return sanitizeKey(input)
}

func sanitizeKey(s string) string {
	s = nonKeyChars.ReplaceAllString(s, "_")
	s = strings.ReplaceAll(s, "__", "_")
	return strings.TrimSuffix(s, "_")
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FilenameFromPath strips everything up to the last forward or back slash.
func FilenameFromPath(value string) string {
	if i := strings.LastIndex(value, "/"); i >= 0 {
		value = value[i+1:]
	}
	if i := strings.LastIndex(value, `\`); i >= 0 {
		value = value[i+1:]
	}
	return value
}

// StripTrailingDate removes a trailing " - YYYY-MM-DDTHH:MM:SS" stamp.
func StripTrailingDate(s string) string {
	return endsWithDate.ReplaceAllString(s, "")
}

// SplitList splits a separator-joined rule field. Blank input yields nil;
// items are not trimmed.
func SplitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, sep)
}

// ParseIntList parses "0, 2,3" into []int, skipping items that are not numbers.
func ParseIntList(s string) []int {
	var out []int
	for _, item := range SplitList(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Pair is an ordered key/value entry.
type Pair struct {
	Key   string
	Value string
}

// ParsePairs parses "k1:v1, k2:v2". Malformed entries are dropped, order is kept.
func ParsePairs(s string) []Pair {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []Pair
	for _, item := range locatorPairSep.Split(s, -1) {
		kv := strings.Split(item, ":")
		if len(kv) != 2 {
			continue
		}
		out = append(out, Pair{Key: strings.TrimSpace(kv[0]), Value: strings.TrimSpace(kv[1])})
	}
	return out
}

// ReplaceFirst replaces only the first occurrence of old.
func ReplaceFirst(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}

// ContainsAny reports whether s contains any non-empty needle.
func ContainsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// HasAnyPrefix reports whether s starts with any non-empty prefix.
func HasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
