package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to postgres when a DSN is given, otherwise to a local sqlite
// file. The sqlite path gets the embedded forward-only migrations; postgres
// schemas are kept in sync through the gorm migrator.
func Open(databaseDSN string, sqlitePath string) (*gorm.DB, error) {
	if databaseDSN != "" {
		return openPostgres(databaseDSN)
	}
	return OpenSQLite(sqlitePath)
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func openPostgres(databaseDSN string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Ticket{},
		&models.TicketResponse{},
		&models.Schedule{},
		&models.Training{},
		&models.TrainingQuestion{},
		&models.TrainingProgress{},
		&models.Submission{},
	); err != nil {
		return nil, fmt.Errorf("migrate postgres schema: %w", err)
	}

	return database, nil
}

func newGormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}
