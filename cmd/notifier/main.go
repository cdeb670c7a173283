package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	"github.com/gimlet-io/project-notifier/cmd/notifier/config"
	"github.com/gimlet-io/project-notifier/pkg/server"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warnf("could not load .env file, relying on env vars")
	}

	config, err := config.Environ()
	if err != nil {
		log.Fatalln("main: invalid configuration")
	}

	initLogger(config)
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Traceln(config.String())
	}

	err = config.Validate()
	if err != nil {
		log.Fatalf("main: %s", err)
	}

	notifier, err := config.Notifier()
	if err != nil {
		log.Fatalf("main: %s", err)
	}
	log.Infof("notifying %s channels of projects %s", config.Notifications.Provider, config.ProjectChannels)

	s := server.New(notifier, config.Github.WebhookSecret, *config.WebhookRateLimitPerMin)

	go func() {
		err := http.ListenAndServe(config.MetricsHost, server.MetricsRouter())
		if err != nil {
			log.Errorf("metrics server stopped: %s", err)
		}
	}()

	listener, err := net.Listen("tcp", config.Host)
	if err != nil {
		log.Fatalf("main: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("listening on %s", config.Host)
	err = s.Serve(ctx, listener, 30*time.Second)
	if err != nil {
		log.Errorf("could not shut down gracefully: %s", err)
		return
	}
	log.Info("in-flight notifications done")
}

// helper function configures the logging.
func initLogger(c *config.Config) {
	log.SetReportCaller(true)

	customFormatter := &log.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return "", fmt.Sprintf("[%s:%d]", filename, f.Line)
		},
	}
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	if c.Logging.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if c.Logging.Trace {
		log.SetLevel(log.TraceLevel)
	}
}
