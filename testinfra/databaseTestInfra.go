package testinfra

import (
	"os"
	"strings"
	"teamboard/persistence"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultMysqlService = "root:root@(127.0.0.1:3306)"

type TestDatabase struct {
	TestDatabaseName string
	DS               *persistence.DataSourceManager
}

// RequireMysql skips the test unless TEST_MYSQL_SERVICE is set, e.g. TEST_MYSQL_SERVICE=root:root@(127.0.0.1:3306)
func RequireMysql(t *testing.T) {
	if os.Getenv("TEST_MYSQL_SERVICE") == "" {
		t.Skip("TEST_MYSQL_SERVICE is not set")
	}
}

// StartMysqlTestDatabase creates a uniquely named database which is dropped when the test ends.
func StartMysqlTestDatabase(t *testing.T, baseName string) *TestDatabase {
	mysqlSvc := os.Getenv("TEST_MYSQL_SERVICE")
	if mysqlSvc == "" {
		mysqlSvc = defaultMysqlService
	}
	databaseName := baseName + "_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	dbConfig := &persistence.DatabaseConfig{
		DriverType: "mysql",
		DriverArgs: mysqlSvc + "/" + databaseName + "?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
	}

	if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
		t.Fatalf("failed to prepare database %s: %v", databaseName, err)
	}
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		t.Fatalf("database connection failed: %v", err)
	}

	testDatabase := &TestDatabase{TestDatabaseName: databaseName, DS: ds}
	t.Cleanup(func() { testDatabase.Drop() })
	return testDatabase
}

// StartMysqlTestStore is StartMysqlTestDatabase plus the migrated document store on top of it.
func StartMysqlTestStore(t *testing.T, baseName string) *persistence.GormStore {
	testDatabase := StartMysqlTestDatabase(t, baseName)
	store, err := persistence.NewGormStore(testDatabase.DS)
	if err != nil {
		t.Fatalf("failed to migrate %s: %v", testDatabase.TestDatabaseName, err)
	}
	return store
}

func (d *TestDatabase) Drop() {
	if d == nil || d.DS == nil {
		return
	}
	if db := d.DS.GormDB(); db != nil {
		if err := db.Exec("DROP DATABASE " + d.TestDatabaseName).Error; err != nil {
			logrus.Warnf("failed to drop test database %s: %v", d.TestDatabaseName, err)
		} else {
			logrus.Infof("test database %s dropped", d.TestDatabaseName)
		}
	}
	d.DS.Stop()
}
