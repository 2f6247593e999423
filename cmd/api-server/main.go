package main

import (
	"Inkwell/config"
	"Inkwell/pkg/database"
	"Inkwell/pkg/log"
	"Inkwell/pkg/snowflake"
	"Inkwell/server"
	"encoding/json"
	"fmt"
	"os"

	"github.com/juju/clock"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func provideClock() clock.Clock {
	return clock.WallClock
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.String("config")
	if path == "" {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		path = fmt.Sprintf("configs/config.%s.yaml", env)
	}
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	if cfg.App.NodeID > 0 {
		if err := snowflake.SetNode(cfg.App.NodeID); err != nil {
			return nil, fmt.Errorf("snowflake node %d: %w", cfg.App.NodeID, err)
		}
	}
	return cfg, nil
}

func main() {
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "Inkwell engagement and feed service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file, defaults to configs/config.$APP_ENV.yaml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					app, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx.Context, app)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables and indexes",
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					cmds, err := InitCommands(cfg)
					if err != nil {
						return err
					}
					if err := database.Migrate(cmds.DB); err != nil {
						return err
					}
					log.L.Info("migration finished")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "load demo users, posts and engagement (idempotent)",
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					cmds, err := InitCommands(cfg)
					if err != nil {
						return err
					}
					_, err = cmds.Seed.Seed(ctx.Context)
					return err
				},
			},
			{
				Name:  "reconcile",
				Usage: "recompute cached counters from edge tables",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "report drift without repairing it"},
				},
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					cmds, err := InitCommands(cfg)
					if err != nil {
						return err
					}
					run := cmds.Reconcile.Run
					if ctx.Bool("dry-run") {
						run = cmds.Reconcile.Check
					}
					drifts, err := run(ctx.Context)
					if err != nil {
						return err
					}
					log.L.Info("reconcile finished", zap.Int("drifts", len(drifts)), zap.Bool("dry_run", ctx.Bool("dry-run")))
					return json.NewEncoder(os.Stdout).Encode(drifts)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("command failed", zap.Error(err))
	}
}
