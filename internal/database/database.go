package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"seoulmarket/server/internal/dataset"
)

// Ingestion is one dataset load attempt.
type Ingestion struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"index;not null" json:"kind"`
	Source     string    `gorm:"not null" json:"source"`
	Size       int64     `json:"size"`
	ModTime    time.Time `json:"mod_time"`
	Rows       int       `json:"rows"`
	Dropped    int       `json:"dropped"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewDatabase opens the SQLite ingestion log at dbPath, creating the parent
// directory when needed. ":memory:" opens a private in-memory database.
func NewDatabase(dbPath string, log *logrus.Logger) (*Database, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return &Database{db: db, logger: log}, nil
}

// RunMigrations creates or updates the schema.
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&Ingestion{}); err != nil {
		return fmt.Errorf("failed to migrate ingestions table: %w", err)
	}
	return nil
}

// Record stores a load event.
func (d *Database) Record(event dataset.LoadEvent) error {
	row := Ingestion{
		Kind:       event.Kind,
		Source:     event.Source,
		Size:       event.Version.Size,
		ModTime:    event.Version.ModTime,
		Rows:       event.Rows,
		Dropped:    event.Dropped,
		DurationMs: event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		row.Error = event.Err.Error()
	}
	if err := d.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record ingestion: %w", err)
	}
	return nil
}

// ObserveLoad records the event and logs instead of failing the load.
func (d *Database) ObserveLoad(event dataset.LoadEvent) {
	if err := d.Record(event); err != nil && d.logger != nil {
		d.logger.WithError(err).WithField("source", event.Source).Error("Failed to record ingestion")
	}
}

// Recent returns the latest ingestions, newest first.
func (d *Database) Recent(limit int) ([]Ingestion, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []Ingestion
	err := d.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestions: %w", err)
	}
	return rows, nil
}

// LastSuccess returns the latest successful ingestion of a kind, or nil.
func (d *Database) LastSuccess(kind string) (*Ingestion, error) {
	var rows []Ingestion
	err := d.db.Where("kind = ? AND error = ''", kind).Order("id DESC").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
