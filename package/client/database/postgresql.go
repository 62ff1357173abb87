package database

import (
	"bookStore/internal/config"
	"bookStore/package/logger"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/lib/pq"
	"time"
)

//go:embed schema.sql
var schema string

// driverName maps the configured driver onto a registered database/sql driver.
func driverName(driver string) (string, error) {
	switch driver {
	case "", "postgres", "pq":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported storage driver %q", driver)
	}
}

func DSN(storage config.StorageConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		storage.Host, storage.Port, storage.Username, storage.Password, storage.Database, storage.SSLMode)
}

func Init(config *config.Config) *sql.DB {
	logger.Log.Info(fmt.Sprintf("Connecting to host=%s port=%d user=%s dbname=%s driver=%s",
		config.Storage.Host, config.Storage.Port, config.Storage.Username, config.Storage.Database, config.Storage.Driver))

	name, err := driverName(config.Storage.Driver)
	if err != nil {
		logger.Log.Fatal(err)
	}

	db, err := sql.Open(name, DSN(config.Storage))
	if err != nil {
		logger.Log.Error(err)
		logger.Log.Fatal("Can not connect to database")
	}
	if config.Storage.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.Storage.MaxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		logger.Log.Error(err)
		logger.Log.Fatal("Database is not reachable")
	}

	logger.Log.Info("Connected to database")
	return db
}

// Migrate creates missing tables. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Log.Info("Database schema is up to date")
	return nil
}
