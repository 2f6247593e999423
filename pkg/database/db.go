package database

import (
	"Inkwell/config"
	"Inkwell/pkg/log"
	"time"

	"github.com/juju/clock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接. Timestamps written by gorm follow clk so that
// simulated time in tests and wall time in production behave the same.
func NewDB(conf *config.Config, clk clock.Clock) *gorm.DB {
	dsn := conf.MySQL.Dsn()
	db, err := gorm.Open(mysql.Open(dsn), GormConfig(clk, conf.Debug()))
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	if conf.MySQL.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			log.L.Fatal("failed to get sql.DB", zap.Error(err))
		}
		sqlDB.SetMaxOpenConns(conf.MySQL.MaxOpenConns)
		sqlDB.SetMaxIdleConns(conf.MySQL.MaxOpenConns / 2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	log.L.Info("connect database success")
	return db
}

// GormConfig is shared by the MySQL store and the SQLite test store.
func GormConfig(clk clock.Clock, debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return Now(clk)
		},
		Logger: logger.Default.LogMode(level),
	}
}

// Now is the canonical timestamp for stored rows: UTC, millisecond precision.
func Now(clk clock.Clock) time.Time {
	return clk.Now().UTC().Truncate(time.Millisecond)
}
