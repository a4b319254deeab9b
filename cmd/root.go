package cmd

import (
	"context"
	"errors"
	"os"

	"users-manager/internal/accounts"
	"users-manager/internal/app"
	"users-manager/internal/config"
	"users-manager/internal/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("users-manager must be run from an interactive terminal")

type rootOptions struct {
	configPath string
	logFile    string
	logLevel   string
	sudo       bool
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:           "users-manager",
	Short:         "Manage local user accounts from a TUI",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default searches ~/.config/users-manager, /etc/users-manager, .)")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.sudo, "sudo", false, "run account commands through sudo -n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags(), opts.configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	runner := accounts.NewExecRunner(cfg.UseSudo, log)
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CommandTimeout)
	err = accounts.CheckPrivilege(ctx, runner, cfg.UseSudo)
	cancel()
	if err != nil {
		log.WithError(err).Error("privilege check failed")
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	dir := accounts.NewSystem(runner, cfg.MinUID, cfg.MaxUID, log)
	log.WithField("sudo", cfg.UseSudo).Info("starting")
	return app.Run(app.StartConfig{
		ItemsPerPage:   cfg.ItemsPerPage,
		CommandTimeout: cfg.CommandTimeout,
		Log:            log,
	}, dir, os.Stdout)
}
