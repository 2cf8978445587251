package core

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// DatabaseManager owns the MySQL connection pool shared by the web layer,
// the store and the background refresher.
type DatabaseManager struct {
	DB       *gorm.DB
	sqlDB    *sql.DB
	LogLevel LogLevel
}

// New opens the pool. dsn must include the schema.
func New(dsn string, maxConnections int) (*DatabaseManager, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxConnections)
	sqlDB.SetMaxIdleConns(maxConnections)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return &DatabaseManager{DB: db, sqlDB: sqlDB}, nil
}

// GetDB returns a *gorm.DB bound to the request context.
func (dm *DatabaseManager) GetDB(ctx context.Context) *gorm.DB {
	db := dm.DB.WithContext(ctx)

	gormLogLevel := logger.Silent
	switch dm.LogLevel {
	case LogLevelError:
		gormLogLevel = logger.Error
	case LogLevelWarn:
		gormLogLevel = logger.Warn
	case LogLevelInfo:
		gormLogLevel = logger.Info
	}
	return db.Session(&gorm.Session{Logger: logger.Default.LogMode(gormLogLevel)})
}

// Close closes the global pool
func (dm *DatabaseManager) Close() error {
	return dm.sqlDB.Close()
}
