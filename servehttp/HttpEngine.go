package servehttp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var ShutdownTimeout = 3 * time.Second

// StartHTTPServer serves until SIGINT or SIGTERM is received, then drains in-flight requests.
func StartHTTPServer(addr string, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		logrus.Infof("http server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill -9 sends SIGKILL which can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Infof("[QUIT] shutdown signal has been received, the service will exit in %v", ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("[QUIT] http server shutdown failed: %v", err)
	}
	logrus.Info("[QUIT] http server is shutdown gracefully, new request will be rejected")
}
