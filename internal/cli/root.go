package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/coffle/internal/version"
	"github.com/arthur-debert/coffle/pkg/config"
	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/repository"
	"github.com/arthur-debert/coffle/pkg/style"
	"github.com/arthur-debert/coffle/pkg/template"
)

// app holds the global flags and the configuration they resolve to
type app struct {
	verbosity  int
	quiet      bool
	repository string
	target     string
	color      string
	configFile string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "coffle",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommandSpecified)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&a.quiet, "quiet", "q", false, MsgFlagQuiet)
	flags.StringVarP(&a.repository, "repository", "R", "", MsgFlagRepository)
	flags.StringVarP(&a.target, "target", "t", "", MsgFlagTarget)
	flags.StringVar(&a.color, "color", config.ColorAuto, MsgFlagColor)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newUninstallCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig resolves the configuration. Only flags given on the command
// line override the lower layers.
func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := map[string]interface{}{}
	if cmd.Flags().Changed("repository") {
		flags["repository"] = a.repository
	}
	if cmd.Flags().Changed("target") {
		flags["target"] = a.target
	}
	if cmd.Flags().Changed("color") {
		flags["color"] = a.color
	}
	if a.quiet {
		flags["verbose"] = false
	}

	cfg, err := config.Load(config.LoadOptions{File: a.configFile, Flags: flags})
	if err != nil {
		return err
	}
	a.cfg = cfg

	style.SetColor(style.DetectColor(cfg.Color, os.Stdout))
	return nil
}

// open opens the configured repository, reporting to the command output
func (a *app) open(cmd *cobra.Command) (*repository.Repository, error) {
	out := cmd.OutOrStdout()
	return repository.New(a.cfg.Repository, a.cfg.Target, repository.Options{
		Renderer: template.NewTemplateRenderer(a.cfg.Template.RendererOptions()),
		Reporter: style.NewPrinter(out),
		Verbose:  a.cfg.Verbose,
		Out:      out,
	})
}

// withRepository runs action on the opened repository. The status file and
// the target marker are written afterwards, also when action failed part
// way: the entries it got to have changed state.
func (a *app) withRepository(cmd *cobra.Command, action func(r *repository.Repository) error) error {
	r, err := a.open(cmd)
	if err != nil {
		return err
	}

	actionErr := action(r)
	if err := r.WriteStatus(); err != nil && actionErr == nil {
		actionErr = err
	}
	if err := r.WriteTargetStatus(); err != nil && actionErr == nil {
		actionErr = err
	}
	return actionErr
}
