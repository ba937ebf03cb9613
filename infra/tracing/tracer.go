package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegermetrics "github.com/uber/jaeger-lib/metrics"
)

// SetupGlobalTracer installs a jaeger tracer configured by the JAEGER_* environment variables.
// Set JAEGER_DISABLED=true to keep a no-op tracer.
func SetupGlobalTracer(serviceName string) (io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}

	tracer, closer, err := cfg.NewTracer(
		jaegercfg.Logger(jaegerLogger{}),
		jaegercfg.Metrics(jaegermetrics.NullFactory),
	)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	logrus.Infof("tracer initialized for service %s, disabled: %v", cfg.ServiceName, cfg.Disabled)
	return closer, nil
}

// jaegerLogger routes the tracer's own diagnostics into logrus.
type jaegerLogger struct{}

func (jaegerLogger) Error(msg string) {
	logrus.Error("jaeger: ", msg)
}

func (jaegerLogger) Infof(msg string, args ...interface{}) {
	logrus.Infof("jaeger: "+msg, args...)
}
