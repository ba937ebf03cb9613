package persistence

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var ErrDriverArgsMissing = errors.New("database driver args is required")

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
}

// ValidateDatabaseConfig fills defaults for a mysql data source.
func ValidateDatabaseConfig(config *DatabaseConfig) error {
	if strings.TrimSpace(config.DriverType) == "" {
		config.DriverType = "mysql"
	}
	if strings.TrimSpace(config.DriverArgs) == "" {
		return ErrDriverArgsMissing
	}
	return nil
}

// PrepareMysqlDatabase creates the database named in the dsn if it does not exist yet.
func PrepareMysqlDatabase(driverArgs string) error {
	mysqlConfig, err := mysql.ParseDSN(driverArgs)
	if err != nil {
		return err
	}
	databaseName := mysqlConfig.DBName
	mysqlConfig.DBName = ""

	db, err := gorm.Open("mysql", mysqlConfig.FormatDSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.Warnf("failed to close database connection: %v", err)
		}
	}()

	if err := db.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` DEFAULT CHARACTER SET utf8mb4").Error; err != nil {
		return err
	}
	logrus.Infof("database %s is ready", databaseName)
	return nil
}
