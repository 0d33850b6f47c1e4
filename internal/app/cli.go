package app

import (
	"context"
	"errors"
	"fmt"

	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/migrations"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const configFlag = "config"

// configFlags are built per command so each one binds its own --config.
func configFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		configFlag: &cobraflags.StringFlag{
			Name:  configFlag,
			Value: "",
			Usage: "Path to the YAML config file (defaults to $CONFIG_PATH or config/config.yaml)",
		},
	}
}

func loadConfig(flags map[string]cobraflags.Flag) (*config.Config, error) {
	cfg, err := config.Load(flags[configFlag].GetString())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	config.AppConfig = cfg
	return cfg, nil
}

// NewRootCommand builds the creatorhub CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "creatorhub",
		Short:         "CreatorHub backend: API, pages and maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	flags := configFlags()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return Run(cfg)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Apply or roll back the SQL schema (postgres)",
		Long: `Run the embedded SQL migrations against the configured database.

Available subcommands:
  up      - Apply every pending migration
  down    - Roll back the latest applied migration
  status  - Print the current version and pending migrations`,
	}

	cmd.AddCommand(newMigrateSubcommand("up", "Apply every pending migration", func(ctx context.Context, m *migrations.Migrator) error {
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		logger.Info("Migrations applied", "count", applied)
		return nil
	}))
	cmd.AddCommand(newMigrateSubcommand("down", "Roll back the latest applied migration", func(ctx context.Context, m *migrations.Migrator) error {
		return m.Down(ctx)
	}))
	cmd.AddCommand(newMigrateSubcommand("status", "Print the current version and pending migrations", func(ctx context.Context, m *migrations.Migrator) error {
		version, err := m.Version(ctx)
		if err != nil {
			return err
		}
		pending, err := m.Pending(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("current version: %d\n", version)
		for _, p := range pending {
			fmt.Printf("pending: %04d_%s\n", p.Version, p.Name)
		}
		return nil
	}))
	return cmd
}

func newMigrateSubcommand(use, short string, run func(ctx context.Context, m *migrations.Migrator) error) *cobra.Command {
	flags := configFlags()
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger.Init(cfg.Server.Env)

			if cfg.Database.Driver != "postgres" {
				return errors.New("SQL migrations support postgres only; use database.auto_migrate for other drivers")
			}

			m, err := migrations.Open(cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer m.Close()

			return run(c.Context(), m)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
