// Package main provides the entry point for the vcsettings CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dongho-jung/vcsettings/internal/app"
	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configDir   string
	web         bool
	platform    string
	showVersion bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "vcsettings",
		Short: "Vencord Settings - core settings panel",
		Long: `vcsettings edits the core settings of the Vencord client mod.
Run without arguments to open the interactive settings panel.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPanel(cmd, opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "", "Config root containing the Vencord directory (default: user config dir)")
	flags.BoolVar(&opts.web, "web", false, "Treat the client as the web build")
	flags.StringVar(&opts.platform, "platform", "", "Override the platform (windows, linux, darwin)")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Print version information")

	rootCmd.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newListCmd(opts),
		newPathCmd(opts),
		newResetCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// setupApp builds the app context for command and loads the store.
func setupApp(opts *globalOptions, command string) (*app.App, error) {
	application, err := app.New(app.Options{
		ConfigRoot: opts.configDir,
		ForceWeb:   opts.web,
		Platform:   opts.platform,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}
	if err := application.Initialize(); err != nil {
		return nil, err
	}
	if err := application.SetupLogging(command); err != nil {
		return nil, err
	}
	if err := application.OpenStore(); err != nil {
		_ = application.Close()
		return nil, err
	}
	return application, nil
}

// runPanel opens the interactive panel and relaunches when asked to.
func runPanel(cmd *cobra.Command, opts *globalOptions) error {
	if opts.showVersion {
		printVersion(cmd.OutOrStdout())
		return nil
	}

	application, err := setupApp(opts, "panel")
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	application.Logger().SetComponent("tui")
	application.Logger().SetConsole(nil)
	logging.Info("opening settings panel (web=%v, platform=%s)", application.Env.IsWeb, application.Platform)
	result, err := tui.RunPanel(application.Store, application.Host, application.Env)
	if err != nil {
		return fmt.Errorf("settings panel failed: %w", err)
	}

	if result.Relaunch {
		logging.Info("relaunching")
		_ = application.Close()
		return application.Host.Relaunch()
	}
	return nil
}
