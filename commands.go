package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/api"
	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/config"
	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/finance"
	"github.com/webiquedev/opsboard-backend/models"
)

const revokerPruneInterval = 10 * time.Minute

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "opsboard",
		Short:         "Operations console backend for projects, costs and notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", os.Getenv("CONFIG_FILE"), "YAML config file, overridden by the environment")

	load := func() (map[string]string, error) {
		return loadConfig(configFile)
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newGenerateModelsCmd(load),
		newColumnReportCmd(load),
		newBreakEvenCmd(load),
	)
	return root
}

type configLoader func() (map[string]string, error)

func loadConfig(path string) (map[string]string, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	c, err := config.Load(path)
	if err != nil {
		return nil, errs.NewConfigError(path, err)
	}

	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	return c, nil
}

func openDatabase(c map[string]string) (*gorm.DB, error) {
	cfg, err := database.ConfigFromMap(c)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = database.GormLogLevel(zerolog.GlobalLevel())

	log.Info().Str("type", cfg.Type).Msg("Connecting to database...")
	db, err := database.Open(cfg)
	if err != nil {
		return nil, errs.NewServiceUnavailableError("database", err)
	}
	return db, nil
}

// newRevoker uses Redis when REDIS_ADDR is set. Otherwise revocations live in
// memory and are pruned until ctx ends.
func newRevoker(ctx context.Context, c map[string]string) (auth.Revoker, func(), error) {
	addr := config.GetString(c, "REDIS_ADDR", "")
	if addr == "" {
		revoker := auth.NewMemoryRevoker(time.Now)
		go revoker.Run(ctx, revokerPruneInterval)
		return revoker, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetString(c, "REDIS_PASSWORD", ""),
		DB:       config.GetInt(c, "REDIS_DB", 0),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, errs.NewServiceUnavailableError("redis", err)
	}

	log.Info().Str("addr", addr).Msg("Session revocations stored in Redis")
	return auth.NewRedisRevoker(client, config.GetString(c, "REDIS_KEY_PREFIX", "")), func() { client.Close() }, nil
}

func newAuthService(c map[string]string, revoker auth.Revoker) (*auth.Service, error) {
	svc, err := auth.NewService(auth.Config{
		Secret:                    config.GetString(c, "SESSION_SECRET", ""),
		DashboardUsername:         config.GetString(c, "DASHBOARD_USERNAME", ""),
		DashboardPassword:         config.GetString(c, "DASHBOARD_PASSWORD", ""),
		FreelancerManagerPassword: config.GetString(c, "FREELANCER_MANAGER_PASSWORD", ""),
		DashboardTTL:              config.GetDuration(c, "DASHBOARD_SESSION_TTL", auth.DefaultDashboardTTL),
	}, revoker)
	if err != nil {
		if errors.Is(err, auth.ErrMissingSecret) {
			return nil, errs.NewEnvironmentVariableError("SESSION_SECRET")
		}
		return nil, err
	}
	return svc, nil
}

func newServeCmd(load configLoader) *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}

			db, err := openDatabase(c)
			if err != nil {
				return err
			}
			currentDB := database.New(db)
			if config.GetBool(c, "AUTO_MIGRATE", true) {
				if err := currentDB.Migrate(); err != nil {
					return errs.NewDatabaseError("migrate", "schema", err)
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			revoker, closeRevoker, err := newRevoker(ctx, c)
			if err != nil {
				return err
			}
			defer closeRevoker()

			authService, err := newAuthService(c, revoker)
			if err != nil {
				return err
			}

			server, err := api.NewServer(c, currentDB, authService)
			if err != nil {
				return fmt.Errorf("initializing server: %w", err)
			}

			errChannel := make(chan error, 2)

			go server.Start(errChannel)
			go listenToInterrupt(errChannel)

			fatalErr := <-errChannel
			log.Info().Msgf("Closing server: %v", fatalErr)

			server.ShutdownGracefully(shutdownTimeout)
			return serveResult(fatalErr)
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Time allowed for in-flight requests on shutdown")
	return cmd
}

// serveResult reports why the server stopped. Signals and a closed server are
// a clean exit.
func serveResult(stopErr error) error {
	if stopErr == nil || errors.Is(stopErr, errInterrupted) || errors.Is(stopErr, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("server stopped: %w", stopErr)
}

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			db, err := openDatabase(c)
			if err != nil {
				return err
			}
			if err := database.New(db).Migrate(); err != nil {
				return errs.NewDatabaseError("migrate", "schema", err)
			}
			log.Info().Int("tables", len(models.All())).Msg("Schema is up to date")
			return nil
		},
	}
}

func newGenerateModelsCmd(load configLoader) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate-models",
		Short: "Generate typed query helpers from the live schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			db, err := openDatabase(c)
			if err != nil {
				return err
			}
			log.Info().Str("out", outPath).Msg("Generating models and query helpers...")
			return models.GenerateModels(db, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "./query", "Output directory for the generated code")
	return cmd
}

func newColumnReportCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "column-report",
		Short: "Compare model fields with the columns in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			db, err := openDatabase(c)
			if err != nil {
				return err
			}
			mismatches, err := models.GenerateColumnMismatchReport(db, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if mismatches > 0 {
				return fmt.Errorf("%d columns are not mapped by any model", mismatches)
			}
			return nil
		},
	}
}

func newBreakEvenCmd(load configLoader) *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Projects needed to pay off a purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}

			result, err := finance.CalculateBreakEven(price, api.EconomicsFromConfig(c))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Price: %.2f\n", result.Price)
			for _, row := range []struct {
				name  string
				basis finance.Basis
			}{
				{"In-House", result.InHouse},
				{"Freelancer", result.Freelancer},
			} {
				fmt.Fprintf(out, "%-11s %d projects (profit %.2f each, margin %.2f%%)\n",
					row.name+":", row.basis.ProjectsRequired, row.basis.ProfitPerProject, row.basis.Margin)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Purchase price")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}
