package pwtransformer

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Turn recorded Playwright scripts into data-driven tests"
	MsgTransformShort  = "Externalize the test data of recorded scripts"
	MsgRulesShort      = "Check a config directory and show the loaded rules"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice     = "\n[warning]DRY RUN[/warning] [muted]No files were written[/muted]"
	MsgFileDone         = "[success]✓[/success] [path]%s[/path] → [path]%s[/path] [muted](%d fields, %d lines)[/muted]"
	MsgFileDryRun       = "[warning]○[/warning] [path]%s[/path] → [path]%s[/path] [muted](%d fields, +%d -%d)[/muted]"
	MsgFileUnchanged    = "[muted]○ %s (no changes)[/muted]"
	MsgFileFailed       = "[error]✗[/error] [path]%s[/path]: %s"
	MsgHint             = "[hint]%s[/hint]"
	MsgRunSummary       = "\n[title]Transformed [count]%d[/count] of [count]%d[/count] scripts[/title]"
	MsgRulesHeader      = "[title]Config[/title] [path]%s[/path]"
	MsgRulesSettings    = "  settings     [path]%s[/path]"
	MsgRulesNoSettings  = "  settings     [muted]built-in defaults[/muted]"
	MsgRulesCountFormat = "  %-12s [count]%d[/count]"
	MsgRulesSection     = "\n[title]%s[/title]"
	MsgVersionFormat    = "pwtransformer version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrorFormat     = "[error]Error: %s[/error]"
	MsgErrNoCommand    = "no command specified"
	MsgErrFailedFiles  = "%d of %d scripts failed"
	MsgErrSetFormat    = "invalid --set value %q, expected key=value"
	MsgErrUnknownShell = "unsupported shell %q"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Directory holding the rule files, boilerplate and pwtransformer.toml"
	MsgFlagSet       = "Override a setting for this run (key=value, repeatable)"
	MsgFlagNoColor   = "Disable colored output"
	MsgFlagInputDir  = "Directory with the recorded scripts"
	MsgFlagOutputDir = "Directory for the transformed scripts"
	MsgFlagDataDir   = "Directory for the generated data files"
	MsgFlagAll       = "Transform every script instead of only the first"
	MsgFlagDryRun    = "Show the changes without writing any file"
	MsgFlagDefaults  = "Print the built-in settings file"
)

// Long messages loaded from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/transform-long.txt
	msgTransformLongRaw string
	MsgTransformLong    = strings.TrimSpace(msgTransformLongRaw)

	//go:embed msgs/transform-example.txt
	msgTransformExampleRaw string
	MsgTransformExample    = strings.TrimRight(msgTransformExampleRaw, "\n")

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
