package main

import (
	"teamboard/common"
	"teamboard/event"
	"teamboard/infra/tracing"
	"teamboard/persistence"
	"teamboard/servehttp"

	"github.com/sirupsen/logrus"
)

func main() {
	common.LoadDotEnv()
	config := common.ParseServiceConfigFromEnv()
	if closer := common.SetupLogging(logrus.StandardLogger(), config); closer != nil {
		defer closer.Close()
	}
	logrus.Infof("service %s start", config.ServiceName)

	tracerCloser, err := tracing.SetupGlobalTracer(config.ServiceName)
	if err != nil {
		logrus.Fatalf("failed to initialize tracer: %v", err)
	}
	defer tracerCloser.Close()

	if config.StoreDriver == common.StoreDriverMysql {
		dbConfig := &persistence.DatabaseConfig{DriverType: config.StoreDriver, DriverArgs: config.DriverArgs}
		if err := persistence.ValidateDatabaseConfig(dbConfig); err != nil {
			logrus.Fatalf("invalid database config: %v", err)
		}
		// create database (no conflict)
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database: %v", err)
		}

		ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
		if err := ds.Start(); err != nil {
			logrus.Fatalf("database connection failed: %v", err)
		}
		defer ds.Stop()
		persistence.ActiveDataSourceManager = ds

		store, err := persistence.NewGormStore(ds)
		if err != nil {
			logrus.Fatalf("database migration failed: %v", err)
		}
		persistence.ActiveStore = store
	} else {
		logrus.Warn("using the in-memory store, data is lost on restart")
	}

	event.EventHandlers = append(event.EventHandlers, event.LogEventHandler)

	servehttp.StartHTTPServer(config.ServerAddr, servehttp.BuildEngine(config.ServiceName))
}
