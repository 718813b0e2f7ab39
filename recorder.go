// Package recorder captures telemetry from a running rFactor session and
// persists it as an OpenMotorsport archive. It decides when a recording
// should start and stop from the stream of race-phase signals, samples
// derived channels at a fixed cadence, and resolves lap/sector markers
// from scoring updates.
package recorder

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/openmotorsport"
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

type state int

const (
	// stateIdle: not in real-time driving, or waiting for the first
	// telemetry frame after entering it.
	stateIdle state = iota

	// stateAwaitingGreenFlag: in real-time driving during a phase where
	// logging must not start yet (e.g. the formation lap). Frames are
	// discarded, not buffered.
	stateAwaitingGreenFlag

	stateLogging
)

const sampleQueueSize = 256

type queuedFrame struct {
	frame   rfactor.TelemInfo
	elapsed float64
}

// Recorder is the recording engine. Host callbacks (telemetry, scoring,
// realtime enter/exit) must be delivered sequentially on one goroutine;
// sampling runs on a single background worker per active session.
type Recorder struct {
	config *Config
	index  *SessionIndex

	state         state
	awaitingEntry bool
	enterPhase    rfactor.GamePhase
	currentPhase  rfactor.GamePhase

	session *openmotorsport.Session
	samp    *sampler

	currentSector uint8
	savedMetadata bool

	totalElapsed        float64
	firstLapET          float64
	timeSinceLastSample float64
	enterLap            int32
	currentLap          int32

	samplingIntervalSeconds float64

	queue chan queuedFrame
	wg    sync.WaitGroup
}

// NewRecorder builds an engine from a configuration. index may be nil to
// disable the session index.
func NewRecorder(config *Config, index *SessionIndex) *Recorder {
	return &Recorder{
		config: config,
		index:  index,

		samplingIntervalSeconds: float64(config.Recorder.SamplingIntervalMs) / 1000,
	}
}

// Message dispatches a decoded host message to the engine. It is the
// callback to hand to rfactor.NewHostClient.
func (r *Recorder) Message(message rfactor.Message) {
	switch m := message.(type) {
	case rfactor.TelemInfo:
		r.OnTelemetry(&m)
	case rfactor.ScoringInfo:
		r.OnScoring(&m)
	case rfactor.EnterRealtime:
		r.OnEnterRealtime()
	case rfactor.ExitRealtime:
		r.OnExitRealtime()
	case rfactor.HostError:
		logrus.WithError(m).Error("host client error")
	}
}

func (r *Recorder) OnEnterRealtime() {
	r.awaitingEntry = true
}

func (r *Recorder) OnExitRealtime() {
	if r.state == stateLogging {
		r.stopLogging()
	}

	r.state = stateIdle
	r.awaitingEntry = false
}

// Stop finalises any in-progress session. It behaves like leaving
// real-time driving and is safe to call at shutdown.
func (r *Recorder) Stop() {
	r.OnExitRealtime()
}

// OnTelemetry admits one telemetry frame. Admission is cheap and runs on
// the host's calling goroutine: state transitions, elapsed-time
// accumulation and cadence gating happen here; the sampling itself is
// handed to the background worker.
func (r *Recorder) OnTelemetry(frame *rfactor.TelemInfo) {
	if r.awaitingEntry {
		r.awaitingEntry = false
		r.enterPhase = r.currentPhase

		// entering anywhere other than the start of a race (testing,
		// practice, qualifying, a running race) starts logging
		// immediately; otherwise wait for the green flag
		switch r.enterPhase {
		case rfactor.PhaseBeforeSession, rfactor.PhaseGreenFlag, rfactor.PhaseFullCourseYellow:
			r.startLogging(frame)
		default:
			r.state = stateAwaitingGreenFlag
		}
	}

	if r.state != stateLogging {
		// the formation lap and the first racing lap share a lap
		// number; a nonzero lap start time is the only reliable signal
		// that the race proper has begun
		if r.state == stateAwaitingGreenFlag && r.currentPhase >= rfactor.PhaseGreenFlag && frame.LapStartET > 0 {
			r.startLogging(frame)
		} else {
			return
		}
	}

	// the out-lap's end can only be observed retrospectively, when the
	// lap number first increases
	if frame.LapNumber > r.enterLap && r.firstLapET == 0 {
		r.firstLapET = r.totalElapsed
		r.session.AddMarker(SecondsToMilliseconds(r.firstLapET))
	}

	r.currentLap = frame.LapNumber

	if r.timeSinceLastSample >= r.samplingIntervalSeconds {
		r.admit(frame)
		r.timeSinceLastSample = 0
	}

	r.totalElapsed += float64(frame.DeltaTime)
	r.timeSinceLastSample += float64(frame.DeltaTime)
}

// OnScoring tracks the race phase, detects in-session restarts and
// drives the sector-time resolver for the player's vehicle.
func (r *Recorder) OnScoring(info *rfactor.ScoringInfo) {
	// a race can be restarted without leaving real-time driving; the
	// only signal is the phase moving backwards
	if info.GamePhase < r.currentPhase && r.state == stateLogging {
		r.stopLogging()
	}

	r.currentPhase = info.GamePhase

	if r.state != stateLogging {
		return
	}

	vehicle := info.Player()

	if vehicle == nil {
		return
	}

	if !r.savedMetadata {
		r.saveMetadata(info, vehicle)
		r.savedMetadata = true
	}

	if vehicle.Sector != r.currentSector {
		r.currentSector = vehicle.Sector
		r.saveSectorTime(vehicle)
	}
}

func (r *Recorder) startLogging(frame *rfactor.TelemInfo) {
	session, err := newLoggingSession(r.config.Recorder.SamplingIntervalMs)

	if err != nil {
		logrus.WithError(err).Error("could not create logging session")
		return
	}

	r.session = session
	r.samp = newSampler(session)
	r.currentSector = rfactor.SectorOne
	r.savedMetadata = false
	r.totalElapsed = 0
	r.firstLapET = 0
	r.timeSinceLastSample = 0
	r.enterLap = frame.LapNumber
	r.currentLap = frame.LapNumber
	r.state = stateLogging

	r.queue = make(chan queuedFrame, sampleQueueSize)
	r.wg.Add(1)

	go r.worker(r.samp, r.queue)

	// sample the first frame immediately so even a degenerate session
	// contains at least one data point
	r.admit(frame)

	logrus.Info("started logging")
}

func (r *Recorder) stopLogging() {
	// halt admission, then let the worker drain what was already
	// admitted so the session reflects a complete prefix of frames
	close(r.queue)
	r.wg.Wait()

	r.saveSession()

	r.session = nil
	r.samp = nil
	r.queue = nil
	r.state = stateIdle
	r.awaitingEntry = true

	logrus.Info("stopped logging")
}

func (r *Recorder) admit(frame *rfactor.TelemInfo) {
	select {
	case r.queue <- queuedFrame{frame: *frame, elapsed: r.totalElapsed}:
		framesAdmitted.Inc()
	default:
		framesDropped.Inc()
		logrus.Warn("sampling queue full, dropping frame")
	}
}

func (r *Recorder) worker(samp *sampler, queue <-chan queuedFrame) {
	defer r.wg.Done()

	for queued := range queue {
		if err := samp.sample(&queued.frame, queued.elapsed); err != nil {
			logrus.WithError(err).Error("could not sample telemetry frame")
		}
	}
}

// saveSession writes the finished session to the output directory unless
// the minimum-laps policy discards it. A failed write is reported and
// the session is lost; the engine never retries.
func (r *Recorder) saveSession() {
	completedLaps := int(r.currentLap - r.enterLap)

	if r.config.Recorder.MinimumLaps > 0 && completedLaps < r.config.Recorder.MinimumLaps {
		sessionsDiscarded.Inc()
		logrus.Infof("discarding session: %d completed laps is below the minimum of %d", completedLaps, r.config.Recorder.MinimumLaps)
		return
	}

	if err := os.MkdirAll(r.config.Recorder.OutputDirectory, 0755); err != nil {
		sessionsFailed.Inc()
		logrus.WithError(err).Errorf("could not create output directory: %s", r.config.Recorder.OutputDirectory)
		return
	}

	path := filepath.Join(r.config.Recorder.OutputDirectory, FormatFileName(r.config.Recorder.Filename, r.session))

	if err := r.session.Write(path); err != nil {
		sessionsFailed.Inc()
		logrus.WithError(err).Errorf("could not write session: %s", path)
		return
	}

	sessionsSaved.Inc()

	size := "unknown size"

	if info, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	logrus.Infof("wrote session (%s) to: %s", size, path)

	if r.index == nil {
		return
	}

	err := r.index.Add(&SessionRecord{
		Path:    path,
		Driver:  r.session.User,
		Track:   r.session.Track,
		Vehicle: r.session.Vehicle,
		Laps:    completedLaps,
		Created: r.session.Date,
	})

	if err != nil {
		logrus.WithError(err).Error("could not index session")
	}
}
