package recorder

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "OpenMotorsport.ini")

	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("could not write config file, err: %s", err)
	}

	return path
}

func TestReadConfigOverrides(t *testing.T) {
	path := writeConfigFile(t, `
[Recorder]
SamplingIntervalMs = 100
OutputDirectory = C:\rFactor\Telemetry
MinimumLaps = 3

[UDP]
ListenPort = 13002

[Store]
IndexPath = sessions.db
`)

	config, err := ReadConfig(path)

	if err != nil {
		t.Fatalf("unexpected error, err: %s", err)
	}

	if config.Recorder.SamplingIntervalMs != 100 {
		t.Errorf("expected a 100ms interval, got %d", config.Recorder.SamplingIntervalMs)
	}

	if config.Recorder.OutputDirectory != `C:\rFactor\Telemetry` {
		t.Errorf("unexpected output directory: %q", config.Recorder.OutputDirectory)
	}

	if config.Recorder.MinimumLaps != 3 {
		t.Errorf("expected 3 minimum laps, got %d", config.Recorder.MinimumLaps)
	}

	// untouched keys keep their defaults
	if config.Recorder.Filename != defaultFilename {
		t.Errorf("expected the default filename template, got %q", config.Recorder.Filename)
	}

	if config.UDP.ListenAddress != defaultListenAddress {
		t.Errorf("expected the default listen address, got %q", config.UDP.ListenAddress)
	}

	if config.UDP.ListenPort != 13002 {
		t.Errorf("expected port 13002, got %d", config.UDP.ListenPort)
	}

	if config.Store.IndexPath != "sessions.db" {
		t.Errorf("unexpected index path: %q", config.Store.IndexPath)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	config, err := ReadConfig(filepath.Join(t.TempDir(), "does-not-exist.ini"))

	if err != nil {
		t.Fatalf("a missing file must not fail, err: %s", err)
	}

	if config.Recorder.SamplingIntervalMs != defaultSamplingIntervalMs {
		t.Errorf("expected the default interval, got %d", config.Recorder.SamplingIntervalMs)
	}

	if config.Recorder.OutputDirectory != defaultOutputDirectory {
		t.Errorf("expected the default output directory, got %q", config.Recorder.OutputDirectory)
	}
}

func TestReadConfigInvalidValuesRevertToDefaults(t *testing.T) {
	path := writeConfigFile(t, `
[Recorder]
SamplingIntervalMs = -50
OutputDirectory =
Filename =
`)

	config, err := ReadConfig(path)

	if err != nil {
		t.Fatalf("unexpected error, err: %s", err)
	}

	if config.Recorder.SamplingIntervalMs != defaultSamplingIntervalMs {
		t.Errorf("expected a non-positive interval to revert to the default, got %d", config.Recorder.SamplingIntervalMs)
	}

	if config.Recorder.OutputDirectory != defaultOutputDirectory {
		t.Errorf("expected an empty directory to revert to the default, got %q", config.Recorder.OutputDirectory)
	}

	if config.Recorder.Filename != defaultFilename {
		t.Errorf("expected an empty template to revert to the default, got %q", config.Recorder.Filename)
	}
}

func TestReadConfigMalformedFileReturnsDefaults(t *testing.T) {
	path := writeConfigFile(t, "[Recorder\nnot an ini file")

	config, err := ReadConfig(path)

	if err == nil {
		t.Error("expected an error for a malformed file")
	}

	// the defaults are still usable so startup can continue
	if config == nil || config.Recorder.SamplingIntervalMs != defaultSamplingIntervalMs {
		t.Error("expected usable defaults alongside the error")
	}
}
