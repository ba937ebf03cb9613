package persistence

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var ActiveDataSourceManager *DataSourceManager

const (
	defaultMaxOpenConns    = 16
	defaultMaxIdleConns    = 4
	defaultConnMaxLifetime = 30 * time.Minute
)

// DataSourceManager owns the gorm connection pool behind the GormStore.
type DataSourceManager struct {
	gormDB *gorm.DB

	DatabaseConfig *DatabaseConfig
}

func (m *DataSourceManager) Start() error {
	db, err := gorm.Open(m.DatabaseConfig.DriverType, m.DatabaseConfig.DriverArgs)
	if err != nil {
		return err
	}
	if err := db.DB().Ping(); err != nil {
		_ = db.Close()
		return err
	}

	db.DB().SetMaxOpenConns(defaultMaxOpenConns)
	db.DB().SetMaxIdleConns(defaultMaxIdleConns)
	db.DB().SetConnMaxLifetime(defaultConnMaxLifetime)

	// sql statements are only worth logging while debugging
	db.SetLogger(gormLogger{})
	db.LogMode(logrus.IsLevelEnabled(logrus.DebugLevel))

	m.gormDB = db
	logrus.Infof("data source %s connected", m.DatabaseConfig.DriverType)
	return nil
}

func (m *DataSourceManager) Stop() {
	if m.gormDB == nil {
		return
	}
	if err := m.gormDB.Close(); err != nil {
		logrus.Warnf("failed to close DB: %v", err)
	}
	m.gormDB = nil
}

// GormDB returns a fresh session on the pool, nil before Start.
func (m *DataSourceManager) GormDB() *gorm.DB {
	if m.gormDB != nil {
		return m.gormDB.New()
	}
	return nil
}

type gormLogger struct{}

func (gormLogger) Print(v ...interface{}) {
	logrus.WithField("component", "gorm").Debug(v...)
}
