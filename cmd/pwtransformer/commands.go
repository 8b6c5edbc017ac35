package pwtransformer

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pwtransformer/internal/version"
	"github.com/arthur-debert/pwtransformer/pkg/config"
	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/style"
	"github.com/arthur-debert/pwtransformer/pkg/transformer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configDir string
	sets      []string
	noColor   bool
}

// overrides turns the --set flags into dotted settings keys.
func (g *globalOptions) overrides() (map[string]interface{}, error) {
	if len(g.sets) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(g.sets))
	for _, s := range g.sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrConfigValid, MsgErrSetFormat, s).
				WithDetail(errors.DetailHint, "use --set noise.max_iterations=20")
		}
		out[key] = value
	}
	return out, nil
}

func (g *globalOptions) load() (*config.Loaded, error) {
	overrides, err := g.overrides()
	if err != nil {
		return nil, err
	}
	return config.Load(g.configDir, overrides)
}

func (g *globalOptions) renderer(w io.Writer) *style.Renderer {
	if g.noColor {
		return style.NewRendererWithColor(w, false)
	}
	return style.NewRenderer(w)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "pwtransformer",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but still fail
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&g.configDir, "config", "c", config.DefaultDir, MsgFlagConfig)
	rootCmd.PersistentFlags().StringArrayVar(&g.sets, "set", nil, MsgFlagSet)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newTransformCmd(g))
	rootCmd.AddCommand(newRulesCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newTransformCmd(g *globalOptions) *cobra.Command {
	var opts transformer.Options

	cmd := &cobra.Command{
		Use:     "transform",
		Short:   MsgTransformShort,
		Long:    MsgTransformLong,
		Example: MsgTransformExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := g.load()
			if err != nil {
				return err
			}
			opts.Extensions = loaded.Settings.Discovery.Extensions

			res, err := transformer.New(loaded.RuleSet, nil).Run(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printRun(out, g.renderer(out), res, opts.DryRun)
			if !res.Success() {
				return fmt.Errorf(MsgErrFailedFiles, len(res.Errors), len(res.Files)+len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.InputDir, "input-dir", "i", "", MsgFlagInputDir)
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", MsgFlagOutputDir)
	cmd.Flags().StringVarP(&opts.DataDir, "data-dir", "d", "", MsgFlagDataDir)
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, MsgFlagAll)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.MarkFlagRequired("input-dir")
	_ = cmd.MarkFlagRequired("output-dir")
	_ = cmd.MarkFlagRequired("data-dir")
	_ = cmd.MarkFlagDirname("input-dir")
	_ = cmd.MarkFlagDirname("output-dir")
	_ = cmd.MarkFlagDirname("data-dir")

	return cmd
}

func newRulesCmd(g *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.GetDefaultsContent())
				return err
			}

			loaded, err := g.load()
			if err != nil {
				return err
			}
			printRules(out, g.renderer(out), loaded)
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf(MsgErrUnknownShell, args[0])
		},
	}
}
