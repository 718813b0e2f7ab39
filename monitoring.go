package recorder

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	framesAdmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "openmotorsport_frames_admitted_total",
		Help: "Telemetry frames admitted for sampling.",
	})

	framesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "openmotorsport_frames_dropped_total",
		Help: "Telemetry frames dropped because the sampling queue was full.",
	})

	sessionsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "openmotorsport_sessions_saved_total",
		Help: "Sessions successfully written to an archive.",
	})

	sessionsDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "openmotorsport_sessions_discarded_total",
		Help: "Sessions discarded by the minimum-laps policy.",
	})

	sessionsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "openmotorsport_sessions_failed_total",
		Help: "Sessions lost to archive write failures.",
	})
)

func init() {
	prometheus.MustRegister(framesAdmitted, framesDropped, sessionsSaved, sessionsDiscarded, sessionsFailed)
}

// StartMonitoring exposes prometheus metrics on addr. An empty address
// disables the endpoint.
func StartMonitoring(addr string) {
	if addr == "" {
		return
	}

	logrus.Infof("serving metrics on: %s", addr)

	go func() {
		if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
			logrus.WithError(err).Error("could not serve metrics")
		}
	}()
}
