package main

import (
	"flag"
	"os"
	"os/signal"

	recorder "github.com/galpin/rfactor-openmotorsport-plugin"
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor/replay"

	"github.com/sirupsen/logrus"
)

var (
	recordFile  string
	replayFile  string
	multiplier  int
	waitForTime bool
)

func init() {
	flag.StringVar(&recordFile, "record", "", "record the live message stream to this JSON file")
	flag.StringVar(&replayFile, "replay", "", "replay a recorded JSON file through the recorder")
	flag.IntVar(&multiplier, "multiplier", 1, "replay speed multiplier")
	flag.BoolVar(&waitForTime, "realtime", false, "honour the original message timing during replay")
	flag.Parse()
}

func main() {
	config, err := recorder.ReadConfig(recorder.DefaultConfigPath)

	if err != nil {
		logrus.WithError(err).Warn("could not read config file, using defaults")
	}

	switch {
	case recordFile != "":
		client, err := rfactor.NewHostClient(config.UDP.ListenAddress, config.UDP.ListenPort, replay.RecordMessages(recordFile))

		if err != nil {
			logrus.Fatalf("could not start host client, err: %s", err)
		}

		defer client.Close()

		logrus.Infof("recording messages to: %s", recordFile)

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch

	case replayFile != "":
		rec := recorder.NewRecorder(config, nil)

		if err := replay.ReplayMessages(replayFile, multiplier, rec.Message, waitForTime); err != nil {
			logrus.Fatalf("could not replay messages, err: %s", err)
		}

		rec.Stop()

	default:
		flag.Usage()
		os.Exit(2)
	}
}
