package common

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	logger := logrus.StandardLogger()
	logger.Out = os.Stdout
	logger.Formatter = &logrus.TextFormatter{}
	logger.AddHook(&DefaultFieldsHook{})
}

type DefaultFieldsHook struct {
	ServiceName     string
	ServiceInstance string
}

func (hook *DefaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *DefaultFieldsHook) Fire(e *logrus.Entry) error {
	if hook.ServiceName != "" {
		e.Data["serviceName"] = hook.ServiceName
	}
	if hook.ServiceInstance != "" {
		e.Data["serviceInstance"] = hook.ServiceInstance
	}
	return nil
}

// SetupLogging reconfigures the standard logger. Returns the rotating file writer when LogFile is set,
// the caller closes it on shutdown.
func SetupLogging(logger *logrus.Logger, config *ServiceConfig) io.Closer {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	hostname, _ := os.Hostname()
	hooks := logrus.LevelHooks{}
	hooks.Add(&DefaultFieldsHook{ServiceName: config.ServiceName, ServiceInstance: hostname})
	logger.ReplaceHooks(hooks)

	if config.LogFile == "" {
		logger.SetOutput(os.Stdout)
		return nil
	}
	rotating := &lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return rotating
}
