package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/settings"
	"github.com/dongho-jung/vcsettings/internal/viewmodel"
)

// parseKeyArg resolves a key argument, listing valid keys on failure.
func parseKeyArg(raw string) (settings.Key, error) {
	k, err := settings.ParseKey(raw)
	if err != nil {
		names := make([]string, 0, len(settings.Keys()))
		for _, k := range settings.Keys() {
			names = append(names, string(k))
		}
		return "", fmt.Errorf("%w (valid keys: %s)", err, strings.Join(names, ", "))
	}
	return k, nil
}

func newGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKeyArg(args[0])
			if err != nil {
				return err
			}
			application, err := setupApp(opts, "get")
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), settings.FormatValue(application.Store.Get(k)))
			return nil
		},
	}
}

func newSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting and write it to the settings document.
Notification timeouts are clamped to 0-20000 milliseconds.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKeyArg(args[0])
			if err != nil {
				return err
			}
			application, err := setupApp(opts, "set")
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			if err := application.Store.SetString(k, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, settings.FormatValue(application.Store.Get(k)))
			return nil
		},
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := setupApp(opts, "list")
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			out := cmd.OutOrStdout()
			for _, k := range settings.Keys() {
				line := fmt.Sprintf("%s = %s", k, settings.FormatValue(application.Store.Get(k)))
				if k.Kind() == settings.KindBool && !viewmodel.Applies(application.Env, k) {
					line += "  # not shown on this platform"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newPathCmd(opts *globalOptions) *cobra.Command {
	var dir, quickCSS, log bool
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := setupApp(opts, "path")
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			path := application.SettingsPath
			switch {
			case dir:
				path = application.SettingsDir
			case quickCSS:
				path = application.QuickCSSPath()
			case log:
				path = application.LogPath
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dir, "dir", false, "Print the settings directory")
	cmd.Flags().BoolVar(&quickCSS, "quickcss", false, "Print the QuickCSS file path")
	cmd.Flags().BoolVar(&log, "log", false, "Print the log file path")
	cmd.MarkFlagsMutuallyExclusive("dir", "quickcss", "log")
	return cmd
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := setupApp(opts, "reset")
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			if err := application.Store.Reset(); err != nil {
				return fmt.Errorf("failed to reset settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults")
			return nil
		},
	}
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print settings changes made by other processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := setupApp(opts, "watch")
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			id := application.Store.SubscribeAll(func(c settings.Change) {
				fmt.Fprintf(out, "%s: %s -> %s\n", c.Key, settings.FormatValue(c.Old), settings.FormatValue(c.New))
			})
			defer application.Store.Unsubscribe(id)

			application.Logger().SetComponent("watcher")
			logging.Info("watching %s", application.SettingsPath)
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", application.SettingsPath)
			if err := application.Store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
