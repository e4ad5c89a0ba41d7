package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ashwch/powermenu/internal/appdirs"
	"github.com/ashwch/powermenu/internal/config"
	"github.com/ashwch/powermenu/internal/session"
	"github.com/ashwch/powermenu/internal/ui"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	ConfigDir string
	UI        string
	Debug     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "powermenu: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "powermenu",
		Short:         "Lock, log out, power off, reboot, suspend or hibernate",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", appdirs.ConfigDir(), "directory holding "+config.FileName)
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "log session activity to stderr")
	cmd.Flags().StringVar(&opts.UI, "ui", "", "ui backend: auto|bubbletea|huh|tview|plain")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newLogger(opts *options, stderr io.Writer) *slog.Logger {
	if !opts.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func runMenu(cmd *cobra.Command, opts *options) error {
	logger := newLogger(opts, cmd.ErrOrStderr())
	s := session.Init(opts.ConfigDir, session.WithLogger(logger))

	backend := s.Config().UI.Backend
	if strings.TrimSpace(opts.UI) != "" {
		backend = config.NormalizeBackend(opts.UI, "")
		if backend == "" {
			return fmt.Errorf("invalid --ui value %q (use auto|bubbletea|huh|tview|plain)", opts.UI)
		}
	}
	logger.Debug("starting menu", slog.String("backend", backend), slog.String("config_dir", opts.ConfigDir))
	return ui.RunMenu(backend, s)
}

func newListCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print the ranked actions for a query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			s := session.Init(opts.ConfigDir, session.WithLogger(newLogger(opts, cmd.ErrOrStderr())))
			return printCandidates(cmd.OutOrStdout(), s.List(query), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")
	return cmd
}

func printCandidates(out io.Writer, candidates []session.Candidate, asJSON bool) error {
	if asJSON {
		if candidates == nil {
			candidates = []session.Candidate{}
		}
		encoded, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(encoded))
		return err
	}
	for _, candidate := range candidates {
		if _, err := fmt.Fprintf(out, "%d\t%s\t%s\n", candidate.ID, candidate.Title, candidate.Description); err != nil {
			return err
		}
	}
	return nil
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved config as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _ := config.Load(opts.ConfigDir, newLogger(opts, cmd.ErrOrStderr()))
			payload, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", appdirs.ConfigFilePath(opts.ConfigDir))
			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report config entries that fall back to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, issues := config.Load(opts.ConfigDir, newLogger(opts, cmd.ErrOrStderr()))
			path := appdirs.ConfigFilePath(opts.ConfigDir)
			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, issue)
			}
			return fmt.Errorf("%d config issue(s)", len(issues))
		},
	})
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := appdirs.ConfigFilePath(opts.ConfigDir)
			_, statErr := os.Stat(path)
			switch {
			case statErr == nil && !force:
				cfg, _ := config.Load(opts.ConfigDir, newLogger(opts, cmd.ErrOrStderr()))
				approved, err := confirmOverwrite(cfg.UI.Backend, path)
				if err != nil {
					return err
				}
				if !approved {
					fmt.Fprintf(cmd.OutOrStdout(), "kept %s\n", path)
					return nil
				}
			case statErr != nil && !errors.Is(statErr, os.ErrNotExist):
				return fmt.Errorf("could not inspect config file: %w", statErr)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file without asking")
	return cmd
}

var confirmOverwrite = func(backend, path string) (bool, error) {
	if !ui.IsInteractiveBackend(backend) {
		return false, fmt.Errorf("%s already exists (use --force)", path)
	}
	approved, used, err := ui.ConfirmOverwrite(backend, path)
	if err != nil {
		return false, fmt.Errorf("could not ask before overwriting %s (use --force): %w", path, err)
	}
	if !used {
		return false, fmt.Errorf("%s already exists (use --force)", path)
	}
	return approved, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
