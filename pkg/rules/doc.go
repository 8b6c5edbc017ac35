// Package rules holds the immutable RuleSet that drives a transformation.
//
// Rules arrive as raw records (FillPattern, ReplaceText, SkipPattern,
// InsertLines, PreProcessor) decoded from JSON, YAML or TOML files. Compile
// validates them, splits their comma separated fields, compiles every regex
// once and returns a RuleSet that is shared read-only by every file
// transformation in a run.
//
// Order is significant everywhere: fill rules are first-match, replace rules
// all run in declaration order, insert rules are first-match per position.
package rules
