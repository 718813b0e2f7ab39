// Package replay records a bridge message stream to JSON and plays it
// back later, so sessions can be re-run through the recorder offline.
package replay

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"

	"github.com/sirupsen/logrus"
)

var entries []Entry

type Entry struct {
	Received  time.Time
	EventType rfactor.Event

	Data rfactor.Message
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var rawData map[string]json.RawMessage

	if err := json.Unmarshal(b, &rawData); err != nil {
		return err
	}

	eventType, ok := rawData["EventType"]

	if !ok {
		return errors.New("event type not specified")
	}

	if err := json.Unmarshal(eventType, &e.EventType); err != nil {
		return err
	}

	received, ok := rawData["Received"]

	if !ok {
		return errors.New("received time not specified")
	}

	if err := json.Unmarshal(received, &e.Received); err != nil {
		return err
	}

	msg := rawData["Data"]

	switch e.EventType {
	case rfactor.EventTelemetry:
		var data *rfactor.TelemInfo

		if err := json.Unmarshal(msg, &data); err != nil {
			return err
		}

		e.Data = *data
	case rfactor.EventScoring:
		var data *rfactor.ScoringInfo

		if err := json.Unmarshal(msg, &data); err != nil {
			return err
		}

		e.Data = *data
	case rfactor.EventEnterRealtime:
		e.Data = rfactor.EnterRealtime{}
	case rfactor.EventExitRealtime:
		e.Data = rfactor.ExitRealtime{}
	default:
		return errors.New("unknown event type")
	}

	return nil
}

// RecordMessages returns a callback that appends every message to a JSON
// file. The file is rewritten on each message so a crash loses nothing.
func RecordMessages(filename string) rfactor.CallbackFunc {
	return func(message rfactor.Message) {
		entries = append(entries, Entry{
			Received:  time.Now(),
			EventType: message.Event(),
			Data:      message,
		})

		f, err := os.Create(filename)

		if err != nil {
			logrus.WithError(err).Errorf("could not create replay file: %s", filename)
			return
		}

		defer f.Close()

		encoder := json.NewEncoder(f)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(entries); err != nil {
			logrus.WithError(err).Error("could not encode replay entries")
		}
	}
}

// ReplayMessages loads a recorded file and delivers each message to the
// callback, optionally honouring the original inter-message delays
// divided by multiplier.
func ReplayMessages(filename string, multiplier int, callbackFunc rfactor.CallbackFunc, waitForTime bool) error {
	var loadedEntries []*Entry

	f, err := os.Open(filename)

	if err != nil {
		return err
	}

	defer f.Close()

	if err := json.NewDecoder(f).Decode(&loadedEntries); err != nil {
		return err
	}

	if len(loadedEntries) == 0 {
		return nil
	}

	timeStart := loadedEntries[0].Received

	for _, entry := range loadedEntries {
		if waitForTime {
			tickDuration := entry.Received.Sub(timeStart) / time.Duration(multiplier)

			logrus.Debugf("next message occurs in: %s", tickDuration)

			if tickDuration > 0 {
				time.Sleep(tickDuration)
			}
		}

		callbackFunc(entry.Data)

		timeStart = entry.Received
	}

	return nil
}
