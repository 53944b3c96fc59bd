// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pilgrimtabby/gdrive-stash/pkg/command"
	"github.com/pilgrimtabby/gdrive-stash/pkg/progress"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
	"github.com/pilgrimtabby/gdrive-stash/pkg/syncer"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command with its own viper instance, so every
// invocation starts from clean flag and config state.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "gdrive-stash <source> <destination>",
		Short: "Copies a local directory's files into a Google Drive directory.",
		Long: `Copies the files of a local directory into a Google Drive directory using the gdrive CLI.

The destination is a path such as "/My Backups" ("/" is the Drive root), or a
Drive folder id when --dest-is-id is given.
- Files missing from Drive are uploaded.
- Files modified locally after their Drive copy was uploaded are deleted and
  uploaded again.
- Nothing is ever deleted from Drive because it was deleted locally.
- Exclusions can be specified via --exclude flags or a .gdrive-stash-ignore file in the source directory.`,
		Args: cobra.ExactArgs(2), // Requires exactly two arguments: source and destination
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stderr, v.GetString("verbosity"))
			slog.SetDefault(logger)

			sourcePath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid source path '%s': %w", args[0], err)
			}
			destination := normalizeDestination(args[1])

			loc, err := loadLocation(v.GetString("timezone"))
			if err != nil {
				return err
			}

			runner, err := command.New(v.GetString("gdrive"), command.WithEnv(v.GetStringSlice("gdrive-env")...))
			if err != nil {
				return fmt.Errorf("%w: %v", remote.ErrExternalTool, err)
			}
			client := remote.NewGdrive(runner, remote.GdriveOptions{
				FieldSeparator: v.GetString("field-separator"),
				Location:       loc,
				ListMax:        v.GetInt("list-max"),
			})

			opts := syncer.Options{
				Source:          sourcePath,
				Destination:     destination,
				Recursive:       v.GetBool("recursive"),
				MakeParents:     v.GetBool("make-parents"),
				DestinationIsID: v.GetBool("dest-is-id"),
				DryRun:          v.GetBool("dry-run"),
				Excludes:        v.GetStringSlice("exclude"),
			}

			logger.Debug("configuration",
				"config_file", v.ConfigFileUsed(),
				"gdrive", runner.Program(),
				"timezone", loc.String(),
				"excludes", opts.Excludes)
			if opts.DryRun {
				logger.Info("--- DRY RUN MODE ---")
			}

			// Usage is only useful for argument errors, not for sync failures
			cmd.SilenceUsage = true

			interactive := isatty.IsTerminal(os.Stderr.Fd())
			tracker := progress.New(&progress.Options{
				Enabled: interactive && !v.GetBool("no-progress"),
				Output:  os.Stderr,
				Color:   interactive,
			})

			sync := syncer.NewSyncer(client, afero.NewOsFs(), opts, tracker)
			if err := sync.Run(cmd.Context()); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.SortFlags = false
	flags.BoolP("recursive", "r", false, "Also copy subdirectories, recursively")
	flags.BoolP("make-parents", "p", false, "Create missing directories of the destination path")
	flags.BoolP("dest-is-id", "i", false, "Treat the destination as a Google Drive folder id")
	flags.StringSliceP("exclude", "e", []string{}, "Patterns to exclude (can be specified multiple times)")
	flags.Bool("dry-run", false, "Show what would be done without changing anything on Drive")
	flags.StringP("verbosity", "v", "info", "Log verbosity level (debug, info, warn, error)")
	flags.String("gdrive", "gdrive", "Name or path of the gdrive executable")
	flags.StringSlice("gdrive-env", []string{}, "Extra KEY=VALUE environment for the gdrive process")
	flags.String("timezone", "Local", "Time zone of the creation times printed by gdrive")
	flags.Int("list-max", remote.DefaultListMax, "Maximum number of entries read per Drive directory")
	flags.String("field-separator", remote.DefaultFieldSeparator, "Field separator requested from gdrive listings")
	flags.Bool("no-progress", false, "Do not show the progress spinner")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default $HOME/.config/gdrive-stash/config.yaml)")

	return rootCmd
}

// Execute builds the root command and runs it with ctx.
// This is called by main.main().
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// normalizeDestination converts backslashes to forward slashes. A lone `"` is
// what some shells pass for `"\"`, and means the root.
func normalizeDestination(dest string) string {
	if dest == `"` {
		return "/"
	}
	return strings.ReplaceAll(dest, `\`, "/")
}
