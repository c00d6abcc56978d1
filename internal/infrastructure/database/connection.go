package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"spyglass/internal/shared/config"
	appLogger "spyglass/internal/shared/logger"
)

var (
	db        *gorm.DB
	replicaDB *gorm.DB
	dbMu      sync.RWMutex
)

// Init initializes the primary database connection and, when configured, a
// read replica handle. Both connections parse time as UTC since every stored
// timestamp is UTC.
func Init(cfg *config.DatabaseConfig) error {
	primary, err := open(cfg.GetDSN(), cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to primary database: %w", err)
	}

	var replica *gorm.DB
	if dsn := cfg.GetReplicaDSN(); dsn != "" {
		replica, err = open(dsn, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to replica database: %w", err)
		}
	}

	dbMu.Lock()
	db = primary
	replicaDB = replica
	dbMu.Unlock()

	appLogger.Info("database connection established",
		"database", cfg.Database,
		"replica", replica != nil)

	return nil
}

func open(dsn string, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		&filteredLogger{},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       dsn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return database, nil
}

// Get returns the primary database connection
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// GetReplica returns the replica connection, or nil when none is configured.
// Repositories fall back to the primary for replica-preference reads when
// this returns nil.
func GetReplica() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return replicaDB
}

// Close closes the database connections
func Close() error {
	dbMu.RLock()
	primary := db
	replica := replicaDB
	dbMu.RUnlock()

	for _, conn := range []*gorm.DB{replica, primary} {
		if conn == nil {
			continue
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	appLogger.Info("database connections closed")
	return nil
}

// filteredLogger filters out schema validation queries
type filteredLogger struct{}

func (l *filteredLogger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if strings.Contains(strings.ToLower(msg), "information_schema.schemata") ||
		strings.Contains(strings.ToLower(msg), "select version()") {
		return
	}

	if strings.Contains(msg, "[error]") || strings.Contains(msg, "ERROR") {
		appLogger.Error("database error", "details", msg)
	} else if strings.Contains(msg, "slow sql") || strings.Contains(msg, "SLOW SQL") {
		appLogger.Warn("slow query", "details", msg)
	} else {
		appLogger.Debug("database query", "details", msg)
	}
}
