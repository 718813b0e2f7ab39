package recorder

import (
	"github.com/cj123/ini"
	"github.com/pkg/errors"
)

const (
	DefaultConfigPath = "OpenMotorsport.ini"

	defaultSamplingIntervalMs = 200
	defaultOutputDirectory    = "UserData/LOG/OpenMotorsport"
	defaultFilename           = "%Y%M%D%H%M_%d_%c_%t.om"
	defaultMinimumLaps        = 1

	defaultListenAddress = "127.0.0.1"
	defaultListenPort    = 12002
)

type Config struct {
	Recorder   RecorderConfig   `ini:"Recorder"`
	UDP        UDPConfig        `ini:"UDP"`
	Monitoring MonitoringConfig `ini:"Monitoring"`
	Store      StoreConfig      `ini:"Store"`
}

type RecorderConfig struct {
	// SamplingIntervalMs is the minimum time between successive samples.
	SamplingIntervalMs int `ini:"SamplingIntervalMs"`

	OutputDirectory string `ini:"OutputDirectory"`

	// Filename is a template with the placeholders %Y %M %D %H %M
	// (date parts), %d (driver), %t (track) and %c (vehicle).
	Filename string `ini:"Filename"`

	// MinimumLaps is the number of completed laps below which a session
	// is discarded instead of written. Zero keeps every session.
	MinimumLaps int `ini:"MinimumLaps"`
}

type UDPConfig struct {
	ListenAddress string `ini:"ListenAddress"`
	ListenPort    int    `ini:"ListenPort"`
}

type MonitoringConfig struct {
	// MetricsAddress exposes prometheus metrics when non-empty.
	MetricsAddress string `ini:"MetricsAddress"`
}

type StoreConfig struct {
	// IndexPath enables the bbolt session index when non-empty.
	IndexPath string `ini:"IndexPath"`
}

func DefaultConfig() *Config {
	return &Config{
		Recorder: RecorderConfig{
			SamplingIntervalMs: defaultSamplingIntervalMs,
			OutputDirectory:    defaultOutputDirectory,
			Filename:           defaultFilename,
			MinimumLaps:        defaultMinimumLaps,
		},
		UDP: UDPConfig{
			ListenAddress: defaultListenAddress,
			ListenPort:    defaultListenPort,
		},
	}
}

// ReadConfig loads the configuration file at path on top of the built-in
// defaults. A missing or malformed file never blocks startup: the
// defaults are returned alongside the error so the caller can log it and
// carry on.
func ReadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	f, err := ini.LooseLoad(path)

	if err != nil {
		return config, errors.Wrapf(err, "recorder: could not read config: %s", path)
	}

	sections := []struct {
		name string
		out  interface{}
	}{
		{"Recorder", &config.Recorder},
		{"UDP", &config.UDP},
		{"Monitoring", &config.Monitoring},
		{"Store", &config.Store},
	}

	for _, section := range sections {
		if err := f.Section(section.name).MapTo(section.out); err != nil {
			return config, errors.Wrapf(err, "recorder: could not map config section: %s", section.name)
		}
	}

	if config.Recorder.SamplingIntervalMs <= 0 {
		config.Recorder.SamplingIntervalMs = defaultSamplingIntervalMs
	}

	if config.Recorder.OutputDirectory == "" {
		config.Recorder.OutputDirectory = defaultOutputDirectory
	}

	if config.Recorder.Filename == "" {
		config.Recorder.Filename = defaultFilename
	}

	return config, nil
}
