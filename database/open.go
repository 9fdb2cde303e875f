package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/webiquedev/opsboard-backend/config"
	"github.com/webiquedev/opsboard-backend/errs"
)

const (
	TypePostgres = "postgres"
	TypeSupabase = "supa"
	TypeSQLite   = "sqlite"
)

// Config selects the backing store. DSN is used for postgres and supa;
// SQLitePath for sqlite.
type Config struct {
	Type       string
	DSN        string
	ReplicaDSN string
	SQLitePath string
	LogLevel   logger.LogLevel
}

// ConfigFromMap reads the database keys out of a config map.
func ConfigFromMap(c map[string]string) (Config, error) {
	cfg := Config{
		Type:       config.GetString(c, "DB_TYPE", TypeSQLite),
		DSN:        config.GetString(c, "DB_DSN", ""),
		ReplicaDSN: config.GetString(c, "DB_REPLICA_DSN", ""),
		SQLitePath: config.GetString(c, "SQLITE_PATH", "opsboard.db"),
		LogLevel:   logger.Warn,
	}

	switch cfg.Type {
	case TypePostgres:
		if cfg.DSN == "" {
			return cfg, errs.NewEnvironmentVariableError("DB_DSN")
		}
	case TypeSupabase:
		if cfg.DSN == "" {
			cfg.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
				config.GetString(c, "SUPABASE_DB_HOST", ""),
				config.GetString(c, "SUPABASE_DB_USER", ""),
				config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
				config.GetString(c, "SUPABASE_DB_NAME", ""),
				config.GetString(c, "SUPABASE_DB_PORT", "5432"),
			)
		}
	case TypeSQLite:
	default:
		return cfg, errs.NewConfigError("DB_TYPE", fmt.Errorf("unsupported database type %q", cfg.Type))
	}
	return cfg, nil
}

// Open connects, registers read replicas when configured and checks the
// connection with a trivial query.
func Open(cfg Config) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  cfg.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case TypePostgres, TypeSupabase:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	case TypeSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errs.NewConfigError("DB_TYPE", fmt.Errorf("unsupported database type %q", cfg.Type))
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, errs.NewDatabaseError("connect", "database", err)
	}

	if cfg.ReplicaDSN != "" && cfg.Type != TypeSQLite {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  cfg.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		zlog.Info().Msg("Read replica registered")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseError("ping", "database", err)
	}

	zlog.Info().Str("type", cfg.Type).Msg("Database connected")
	return db, nil
}

// OpenMemory opens a private in-memory SQLite database with every table
// migrated. Used by tests and the local demo mode.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// every pooled connection would otherwise see its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GormLogLevel maps a zerolog level onto the GORM logger levels.
func GormLogLevel(level zerolog.Level) logger.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return logger.Info
	case level <= zerolog.WarnLevel:
		return logger.Warn
	case level <= zerolog.ErrorLevel:
		return logger.Error
	default:
		return logger.Silent
	}
}
