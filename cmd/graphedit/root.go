package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/psidex/graphedit/internal/config"
	"github.com/psidex/graphedit/internal/lib"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// app is filled in by the root command before any subcommand runs.
type app struct {
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "graphedit",
		Short:         "graphedit serves an interactive node/edge graph editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		serveCmd(a),
		exportCmd(a),
		snapshotCmd(a),
		dispatchCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	level, err := lib.ParseSLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = lib.NiceLogger(os.Stderr, level)
	return nil
}
