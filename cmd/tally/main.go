package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/tallyhq/tally/internal/backup"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/cli/backups"
	"github.com/tallyhq/tally/internal/cli/system"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/errors"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Store file path (.json or .db). Overrides the config file." type:"string"`
	Debug   bool   `help:"Enable verbose logging."`

	Menu   system.MenuCmd   `cmd:"" help:"Open the interactive menu." default:"1"`
	Init   system.InitCmd   `cmd:"" help:"Initialize the store file."`
	Start  cli.StartCmd     `cmd:"" help:"Time one session against a project."`
	List   cli.ListCmd      `cmd:"" help:"List active and completed projects."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Project stopwatch / cumulative time tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.StorePath = config.ExpandPath(CLI.Store)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(cfg.StorePath),
	}); err != nil {
		errors.Fatal(err)
	}

	store := storage.NewProvider(cfg.StorePath)
	mgr := backup.NewManagerWithOptions(cfg.StorePath, cfg.ArchiveDir, cfg.MaxBackups)

	appCtx := &cli.Context{
		Config:  cfg,
		Store:   store,
		Backups: mgr,
		Tracker: tracker.New(store, mgr),
	}

	// Init handles its own store creation.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}
