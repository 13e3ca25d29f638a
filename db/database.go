package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// Database represents the database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection
func NewDatabase(dbPath string) (*Database, error) {
	// Check if the database exists and has the old schema
	needsMigration, err := checkOldSchema(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check database schema: %w", err)
	}

	// Configure GORM logger
	logConfig := gormlogger.Config{
		LogLevel: gormlogger.Warn, // Log only warnings and errors
		Colorful: true,
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.New(
			logger.Logger,
			logConfig,
		),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// If we need to migrate from the old schema
	if needsMigration {
		if err := migrateOldSchema(db); err != nil {
			return nil, fmt.Errorf("failed to migrate old schema: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.Creator{},
		&models.Brand{},
		&models.Partnership{},
		&models.CreatorPost{},
		&models.DiscoveryRun{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{DB: db}, nil
}

// checkOldSchema checks if the database still has the pre-0.3 partnerships
// table that keyed rows on post_url alone
func checkOldSchema(dbPath string) (bool, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		// If the database doesn't exist, no migration needed
		return false, nil
	}
	defer sqlDB.Close()

	var count int
	err = sqlDB.QueryRow(`SELECT COUNT(*) FROM sqlite_master
                         WHERE type='table' AND name='partnerships'
                         AND sql LIKE '%post_url TEXT PRIMARY KEY%'`).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// migrateOldSchema moves old partnership rows into the current schema with
// the composite (creator, brand, post) key
func migrateOldSchema(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS partnerships_new (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        creator_handle TEXT NOT NULL,
        brand_handle TEXT NOT NULL,
        post_url TEXT NOT NULL,
        post_type TEXT,
        post_caption TEXT,
        posted_at DATETIME,
        likes_count INTEGER,
        comments_count INTEGER,
        views_count INTEGER,
        detection_signals TEXT,
        detection_confidence TEXT,
        discovered_via_hashtag TEXT,
        created_at DATETIME
    )`).Error; err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)

	if err := db.Exec(`INSERT INTO partnerships_new (creator_handle, brand_handle, post_url,
                      post_type, post_caption, posted_at, likes_count, comments_count,
                      views_count, detection_signals, detection_confidence,
                      discovered_via_hashtag, created_at)
                      SELECT creator_handle, brand_handle, post_url, post_type, post_caption,
                      posted_at, likes_count, comments_count, views_count, detection_signals,
                      detection_confidence, discovered_via_hashtag, ?
                      FROM partnerships`, now).Error; err != nil {
		return err
	}

	if err := db.Exec(`DROP TABLE partnerships`).Error; err != nil {
		return err
	}

	if err := db.Exec(`ALTER TABLE partnerships_new RENAME TO partnerships`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_partnerships_key
                      ON partnerships(creator_handle, brand_handle, post_url)`).Error; err != nil {
		return err
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
