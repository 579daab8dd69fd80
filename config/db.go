package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"journify/global"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var logLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// OpenDB opens the pooled GORM handle described by cfg. Driver errors are
// translated into gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func OpenDB(cfg DatabaseConfig) (*gorm.DB, error) {
	level, ok := logLevels[strings.ToLower(cfg.LogLevel)]
	if !ok {
		level = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "mysql":
		dialector = mysql.Open(cfg.Dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.Dsn)
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(sqliteDSN(cfg.Dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// SQLite has a single writer; one connection also keeps :memory: databases alive.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// sqliteDSN enables foreign keys, WAL and a busy timeout unless the caller
// already set them.
func sqliteDSN(base string) string {
	params := url.Values{}
	if !strings.Contains(base, "_foreign_keys") && !strings.Contains(base, "_fk") {
		params.Add("_foreign_keys", "on")
	}
	if base != ":memory:" && !strings.Contains(base, "_journal_mode") {
		params.Add("_journal_mode", "WAL")
	}
	if !strings.Contains(base, "_busy_timeout") {
		params.Add("_busy_timeout", "5000")
	}
	if len(params) == 0 {
		return base
	}
	if strings.Contains(base, "?") {
		return base + "&" + params.Encode()
	}
	return base + "?" + params.Encode()
}

func initDB() {
	db, err := OpenDB(AppConfig.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	global.Db = db
	log.Println("database initialized, driver:", db.Dialector.Name())
}
