package db

import (
	"log"
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// NewLogger bridges gorm's logger onto logrus at a level derived from
// the app-wide log-level flag. SQL statements only show up at debug
// and below.
func NewLogger(logLevel string) gormlogger.Interface {
	level := gormlogger.Silent
	switch logLevel {
	case "trace", "debug":
		level = gormlogger.Info
	case "warn":
		level = gormlogger.Warn
	case "error":
		level = gormlogger.Error
	}

	return gormlogger.New(
		log.New(logrus.StandardLogger().Writer(), "", 0),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}
