package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avitaltamir/vibechat/internal/app"
	"github.com/avitaltamir/vibechat/internal/config"
	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/feed"
	"github.com/avitaltamir/vibechat/internal/layout"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/notification"
	"github.com/avitaltamir/vibechat/internal/state"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// flags mirrors the command line. Only flags the user set override the
// configuration.
type flags struct {
	theme           string
	data            string
	stateDir        string
	logFile         string
	debug           bool
	notify          bool
	bell            bool
	doubleClick     time.Duration
	contactsPercent int
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "vchat",
		Short: "Terminal chat client",
		Long: `vchat is a full-screen terminal chat client: a contacts list, the open
conversation and a typing area, driven by keyboard and mouse.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg, cmd.Flags().Changed("theme") || os.Getenv(config.EnvTheme) != "")
		},
	}
	cmd.SetVersionTemplate("vchat {{.Version}}\n")

	bindFlags(cmd.Flags(), &f)
	cmd.AddCommand(newThemeCmd())
	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVar(&f.theme, "theme", theme.DefaultName, "built-in theme name or theme file")
	fs.StringVar(&f.data, "data", "", "message fixture file (default <state-dir>/"+config.DataFileName+")")
	fs.StringVar(&f.stateDir, "state-dir", "", "directory for saved UI state")
	fs.StringVar(&f.logFile, "log-file", logger.DefaultLogPath(), "log file")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&f.notify, "notify", false, "desktop notifications for incoming messages")
	fs.BoolVar(&f.bell, "bell", true, "ring the terminal bell at list ends")
	fs.DurationVar(&f.doubleClick, "double-click", config.DefaultDoubleClick, "double-click threshold")
	fs.IntVar(&f.contactsPercent, "contacts-percent", layout.DefaultContactsPercent, "contacts pane width in percent")
}

// loadConfig layers defaults, environment and the flags that were set,
// then fills in what the previous run saved.
func loadConfig(fs *pflag.FlagSet, f flags) (config.Config, error) {
	cfg := config.Default()
	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return cfg, err
	}
	if fs.Changed("state-dir") {
		cfg.StateDir = f.stateDir
		if os.Getenv(config.EnvDataFile) == "" {
			cfg.DataFile = config.DataFileIn(cfg.StateDir)
		}
	}
	if fs.Changed("data") {
		cfg.DataFile = f.data
	}
	if fs.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fs.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fs.Changed("debug") {
		cfg.Debug = f.debug
	}
	if fs.Changed("notify") {
		cfg.Notify = f.notify
	}
	if fs.Changed("bell") {
		cfg.Bell = f.bell
	}
	if fs.Changed("double-click") {
		cfg.DoubleClick = f.doubleClick
	}
	if fs.Changed("contacts-percent") {
		cfg.ContactsPercent = f.contactsPercent
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	saved := state.LoadFrom(cfg.StateDir)
	if saved.ContactsPercent != 0 && !fs.Changed("contacts-percent") && os.Getenv(config.EnvContactsPercent) == "" {
		cfg.ContactsPercent = layout.ClampPercent(saved.ContactsPercent)
	}
	if saved.Theme != "" && !fs.Changed("theme") && os.Getenv(config.EnvTheme) == "" {
		cfg.Theme = saved.Theme
	}
	return cfg, nil
}

func runTUI(ctx context.Context, cfg config.Config, themeSet bool) error {
	if err := logger.Init(cfg.LogFile); err != nil {
		return errors.E(errors.Op("vchat"), errors.KindConfig, "cannot open log file "+cfg.LogFile, err)
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)
	log := logger.ComponentLogger("main")

	profile, err := checkTerminal()
	if err != nil {
		log.Error("terminal check failed", "error", err)
		return err
	}
	if err := state.CheckWritable(cfg.StateDir); err != nil {
		log.Error("state dir not writable", "dir", cfg.StateDir, "error", err)
		return err
	}

	if profile == termenv.Ascii && !themeSet {
		cfg.Theme = "mono"
	}
	th, err := theme.Resolve(cfg.Theme)
	if err != nil {
		if themeSet {
			return err
		}
		log.Warn("saved theme unusable, using default", "theme", cfg.Theme, "error", err)
		if th, err = theme.Resolve(theme.DefaultName); err != nil {
			return err
		}
	}

	opts := app.Options{
		Config:   cfg,
		Theme:    th,
		State:    state.LoadFrom(cfg.StateDir),
		Source:   feed.FileSource{Path: cfg.DataFile},
		Notifier: notification.NewDesktop(),
		BellOut:  os.Stdout,
	}
	if _, err := os.Stat(cfg.DataFile); err == nil {
		w, err := feed.Watch(cfg.DataFile)
		if err != nil {
			log.Warn("cannot watch data file", "path", cfg.DataFile, "error", err)
		} else {
			opts.Watcher = w
		}
	} else {
		log.Warn("data file missing", "path", cfg.DataFile)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	log.Info("starting", "version", app.Version, "theme", th.Name(), "profile", profileName(profile),
		"data", cfg.DataFile, "state", cfg.StateDir)
	err = app.Run(ctx, opts)
	if err != nil {
		log.Error("exited with error", "error", err)
	}
	return err
}
