package main

import (
	"os"
	"os/signal"
	"syscall"

	recorder "github.com/galpin/rfactor-openmotorsport-plugin"
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"

	"go.etcd.io/bbolt"
	"github.com/sirupsen/logrus"
)

func main() {
	config, err := recorder.ReadConfig(recorder.DefaultConfigPath)

	if err != nil {
		logrus.WithError(err).Warn("could not read config file, using defaults")
	}

	var index *recorder.SessionIndex

	if config.Store.IndexPath != "" {
		db, err := bbolt.Open(config.Store.IndexPath, 0644, nil)

		if err != nil {
			logrus.Fatalf("could not open session index, err: %s", err)
		}

		defer db.Close()

		index = recorder.NewSessionIndex(db)
	}

	recorder.StartMonitoring(config.Monitoring.MetricsAddress)

	rec := recorder.NewRecorder(config, index)

	client, err := rfactor.NewHostClient(config.UDP.ListenAddress, config.UDP.ListenPort, rec.Message)

	if err != nil {
		logrus.Fatalf("could not start host client, err: %s", err)
	}

	defer client.Close()

	logrus.Infof("listening for telemetry on: %s:%d", config.UDP.ListenAddress, config.UDP.ListenPort)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch

	// finalise any in-progress session before exiting
	rec.Stop()
}
