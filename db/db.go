package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nutricoach/config"
	"nutricoach/logger"
	"nutricoach/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// ParseDatabaseURL converts DATABASE_URL into a gorm dialect and DSN.
//
//	sqlite:///app.db        -> sqlite3, app.db
//	sqlite:////var/app.db   -> sqlite3, /var/app.db
//	sqlite://:memory:       -> sqlite3, :memory:
//	postgres://... | postgresql://... -> postgres, url unchanged
func ParseDatabaseURL(raw string) (dialect string, dsn string, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", "", fmt.Errorf("empty database url")
	case strings.HasPrefix(raw, "sqlite:///"):
		dsn = strings.TrimPrefix(raw, "sqlite:///")
	case strings.HasPrefix(raw, "sqlite://"):
		dsn = strings.TrimPrefix(raw, "sqlite://")
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DialectPostgres, raw, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme: %q", raw)
	}
	if dsn == "" {
		return "", "", fmt.Errorf("sqlite database path missing in %q", raw)
	}
	return DialectSQLite, dsn, nil
}

// Connect abre a conexão definida em DATABASE_URL e, se habilitado, faz o automigrate.
func Connect(conf config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	dialect, dsn, err := ParseDatabaseURL(conf.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	log.Info("connecting database", "dialect", dialect)
	database, err := Open(dialect, dsn)
	if err != nil {
		log.Error("database connection failed", "error", err)
		return nil, err
	}

	database.SetLogger(logger.GormLogger{Log: log})
	database.LogMode(conf.DbLog)

	if conf.AutoMigrate {
		if err := Migrate(database); err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

// Open connects without migrating. sqlite is limited to one connection:
// it serialises writers anyway and ":memory:" is per connection.
func Open(dialect, dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		database.DB().SetMaxOpenConns(1)
	}
	return database, nil
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(models.All()...).Error; err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
