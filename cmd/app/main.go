package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiptrack/cmd"
	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/seed"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "shiptrack",
		Short:         "Shipment tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCommand(&envFile),
		newMigrateCommand(&envFile),
		newSeedCommand(&envFile),
		newCreateAdminCommand(&envFile),
	)
	return root
}

func newServeCommand(envFile *string) *cobra.Command {
	var migrate bool

	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := cmd.Bootstrap(ctx, *envFile)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			if migrate {
				if err := postgres.Migrate(rt.DB); err != nil {
					return err
				}
			}
			return serve(ctx, rt)
		},
	}
	command.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return command
}

func serve(ctx context.Context, rt *cmd.Runtime) error {
	e, err := rt.Root.NewHTTPServer(ctx)
	if err != nil {
		return err
	}

	jobManager := rt.Root.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	addr := fmt.Sprintf("0.0.0.0:%s", rt.Config.HTTPPort)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.Logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rt.Logger.Info("HTTP server shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			rt, err := cmd.Bootstrap(c.Context(), *envFile)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			if err := postgres.Migrate(rt.DB); err != nil {
				return err
			}
			rt.Logger.Info("Schema migrated")
			return nil
		},
	}
}

func newSeedCommand(envFile *string) *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures; existing records are kept",
		RunE: func(c *cobra.Command, _ []string) error {
			fixtures, err := loadFixtures(file)
			if err != nil {
				return err
			}

			rt, err := cmd.Bootstrap(c.Context(), *envFile)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			if err := postgres.Migrate(rt.DB); err != nil {
				return err
			}
			_, err = rt.Root.NewSeeder().Apply(c.Context(), fixtures)
			return err
		},
	}
	command.Flags().StringVar(&file, "file", "", "YAML fixtures to load instead of the built-in ones")
	return command
}

func loadFixtures(file string) (seed.Fixtures, error) {
	if file == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return seed.Fixtures{}, err
	}
	return seed.Parse(data)
}

func newCreateAdminCommand(envFile *string) *cobra.Command {
	var profile admin.Profile
	var password string

	command := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(c *cobra.Command, _ []string) error {
			createAdmin, err := commands.NewCreateAdminCommand(profile, password)
			if err != nil {
				return err
			}

			rt, err := cmd.Bootstrap(c.Context(), *envFile)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			handler := rt.Root.CreateCreateAdminCommandHandler()
			if err := handler.Handle(c.Context(), createAdmin); err != nil {
				return err
			}
			rt.Logger.Info("Admin created",
				zap.String("id", createAdmin.AdminID().String()),
				zap.String("email", profile.Email),
			)
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&profile.FirstName, "first-name", "", "first name")
	flags.StringVar(&profile.LastName, "last-name", "", "last name")
	flags.StringVar(&profile.Email, "email", "", "login email")
	flags.StringVar(&profile.Phone, "phone", "", "phone number")
	flags.StringVar(&password, "password", "", "initial password")
	for _, name := range []string{"first-name", "last-name", "email", "password"} {
		_ = command.MarkFlagRequired(name)
	}
	return command
}
