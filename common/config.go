package common

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverMysql  = "mysql"
)

type ServiceConfig struct {
	ServiceName string
	ServerAddr  string
	StoreDriver string
	DriverArgs  string
	LogFormat   string
	LogLevel    string
	LogFile     string
}

// LoadDotEnv reads the given env files into the process environment, existing variables win.
// Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logrus.Warnf("failed to load env file %s: %v", f, err)
		}
	}
}

func ParseServiceConfigFromEnv() *ServiceConfig {
	return &ServiceConfig{
		ServiceName: envOrDefault("SERVICE_NAME", "teamboard"),
		ServerAddr:  envOrDefault("SERVER_ADDR", ":80"),
		StoreDriver: strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverMemory)),
		DriverArgs:  os.Getenv("DB_DRIVER_ARGS"),
		LogFormat:   strings.ToLower(envOrDefault("LOG_FORMAT", "text")),
		LogLevel:    strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFile:     os.Getenv("LOG_FILE"),
	}
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
