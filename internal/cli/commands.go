package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/coffle/internal/version"
	"github.com/arthur-debert/coffle/pkg/config"
	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/repository"
	"github.com/arthur-debert/coffle/pkg/style"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "init [directory]",
		Short:   MsgInitShort,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Repository
			if len(args) > 0 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %s", dir)
			}

			created, err := repository.Initialize(abs)
			if err != nil {
				return err
			}
			if created {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgInitializeFormat, abs)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgAlreadyInitFmt, abs)
			}
			return nil
		},
	}
}

// overwriteFlags registers -o/--overwrite and --no-overwrite; the latter wins
func overwriteFlags(cmd *cobra.Command) func() bool {
	var overwrite, noOverwrite bool
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, MsgFlagOverwrite)
	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, MsgFlagNoOverwrite)
	return func() bool { return overwrite && !noOverwrite }
}

func newBuildCmd(a *app) *cobra.Command {
	var rebuild, noRebuild bool

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
	}
	overwrite := overwriteFlags(cmd)
	cmd.Flags().BoolVarP(&rebuild, "rebuild", "r", false, MsgFlagRebuild)
	cmd.Flags().BoolVar(&noRebuild, "no-rebuild", false, MsgFlagNoRebuild)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cli.build")
		logger.Info().Bool("rebuild", rebuild && !noRebuild).Bool("overwrite", overwrite()).Msg("Starting build")

		return a.withRepository(cmd, func(r *repository.Repository) error {
			return r.Build(rebuild && !noRebuild, overwrite())
		})
	}
	return cmd
}

func newInstallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
	}
	overwrite := overwriteFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.withRepository(cmd, func(r *repository.Repository) error {
			return r.Install(overwrite())
		})
	}
	return cmd
}

func newUninstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   MsgUninstallShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepository(cmd, func(r *repository.Repository) error {
				return r.Uninstall()
			})
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepository(cmd, func(r *repository.Repository) error {
				rows, err := r.StatusTable()
				if err != nil {
					return err
				}
				table, err := style.RenderStatusTable(rows)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "diff",
		Short:   MsgDiffShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepository(cmd, func(r *repository.Repository) error {
				return r.Diff(cmd.OutOrStdout())
			})
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   MsgInfoShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepository(cmd, func(r *repository.Repository) error {
				r.Info(cmd.OutOrStdout())
				return nil
			})
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, _ = cmd.OutOrStdout().Write(data)
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
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   MsgCompletionUsage,
		Short:                 MsgCompleteShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
