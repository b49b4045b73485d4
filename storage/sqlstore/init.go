package sqlstore

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"license-hub/vars"
)

// InitDB 初始化数据库连接并建表（幂等）
// sqlite dsn: "licenses.db" 或 ":memory:"
// postgres dsn: "host=localhost user=postgres password=root dbname=mydb port=5432 sslmode=disable"
func InitDB(driver, dsn string, debug bool, log logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case vars.SQLITE:
		dialector = sqlite.Open(dsn)
	case vars.POSTGRES:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info // 调试时打印 SQL
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if driver == vars.SQLITE {
		// sqlite 单写者；:memory: 库只存在于单个连接上
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.WithField("driver", driver).Info("database connected")
	return db, nil
}

// Migrate 建表，已存在时只补齐缺失的列和索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Agreement{}, &Session{}); err != nil {
		return fmt.Errorf("migrate schema failed: %w", err)
	}
	return nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
