package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// Open connects to the database selected by cfg.Driver and migrates the schema.
func Open(cfg config.Database) (*Database, error) {
	level := parseLogLevel(cfg.LogLevel)
	switch cfg.Driver {
	case config.DatabaseDriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
		return open(postgres.Open(cfg.DSN), "postgres", level)
	case config.DatabaseDriverSQLite, "":
		return open(sqlite.Open(cfg.Path), cfg.Path, level)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewDatabase opens (or creates) a SQLite database at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return open(sqlite.Open(dbPath), dbPath, logger.Warn)
}

// NewPostgresDatabase connects to PostgreSQL using a pgx connection string.
func NewPostgresDatabase(dsn string) (*Database, error) {
	return open(postgres.Open(dsn), "postgres", logger.Warn)
}

func open(dialector gorm.Dialector, name string, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", name)

	return &Database{DB: db}, nil
}

// Dialect returns the name of the underlying SQL dialect ("sqlite", "postgres").
func (d *Database) Dialect() string {
	return d.DB.Dialector.Name()
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
