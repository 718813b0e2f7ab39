package recorder

import (
	"testing"

	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"
)

// startLoggingForSectors puts a recorder into the logging state with a
// known elapsed time per telemetry frame.
func startLoggingForSectors(t *testing.T) *Recorder {
	t.Helper()

	rec := NewRecorder(testConfig(t), nil)
	rec.OnEnterRealtime()

	frame := telemetryFrame(0, 0.5, 0)
	rec.OnTelemetry(&frame)

	if rec.state != stateLogging {
		t.Fatal("expected recorder to be logging")
	}

	return rec
}

func (r *Recorder) advance(seconds float32) {
	frame := telemetryFrame(r.currentLap, seconds, 0)
	r.OnTelemetry(&frame)
}

func sendSector(rec *Recorder, sector uint8, lastLap, lastS2, curS1, curS2 float32) {
	vehicle := playerInSector(sector)
	vehicle.LastLapTime = lastLap
	vehicle.LastSector2 = lastS2
	vehicle.CurSector1 = curS1
	vehicle.CurSector2 = curS2

	update := scoringUpdate(rfactor.PhaseGreenFlag, vehicle)
	rec.OnScoring(&update)
}

func TestSectorResolverOutLap(t *testing.T) {
	rec := startLoggingForSectors(t)

	// out-lap: no split times are exposed until a full lap is complete
	sectors := []uint8{1, 1, 2, 2, 0, 0, 1}

	var expected []float64

	for _, sector := range sectors {
		previous := rec.currentSector

		sendSector(rec, sector, 0, 0, 0, 0)

		// absolute markers are recorded from the recorder's own
		// elapsed-time counter at the 2->0 and 0->1 transitions
		if previous == rfactor.SectorTwo && sector == rfactor.SectorThree {
			expected = append(expected, SecondsToMilliseconds(rec.totalElapsed))
		}

		if previous == rfactor.SectorThree && sector == rfactor.SectorOne {
			expected = append(expected, SecondsToMilliseconds(rec.totalElapsed))
		}

		rec.advance(10)
	}

	markers := rec.session.Markers()

	if len(markers) != 2 {
		t.Fatalf("expected 2 markers on the out-lap, got %d", len(markers))
	}

	for i, marker := range markers {
		if marker != expected[i] {
			t.Errorf("marker %d: expected %f, got %f", i, expected[i], marker)
		}
	}

	rec.Stop()
}

func TestSectorResolverAuthoritativeSplits(t *testing.T) {
	rec := startLoggingForSectors(t)

	// seed a first marker so the relative markers have a base
	rec.session.AddMarker(60000)

	// completing sector 1 after a full lap exists: the split is the
	// last lap time minus its sector 2 split
	sendSector(rec, rfactor.SectorTwo, 90, 60, 0, 0)

	// completing sector 2: the current sector 1 split is authoritative
	sendSector(rec, rfactor.SectorThree, 90, 60, 31, 0)

	// completing the lap: sector 3's duration is the difference of the
	// current splits
	sendSector(rec, rfactor.SectorOne, 90, 60, 31, 62)

	markers := rec.session.Markers()

	expected := []float64{60000, 90000, 121000, 152000}

	if len(markers) != len(expected) {
		t.Fatalf("expected %d markers, got %d", len(expected), len(markers))
	}

	for i, marker := range markers {
		if marker != expected[i] {
			t.Errorf("marker %d: expected %f, got %f", i, expected[i], marker)
		}
	}

	rec.Stop()
}

func TestSectorResolverNoMarkerWithoutTransition(t *testing.T) {
	rec := startLoggingForSectors(t)

	for i := 0; i < 5; i++ {
		sendSector(rec, rfactor.SectorOne, 0, 0, 0, 0)
	}

	if len(rec.session.Markers()) != 0 {
		t.Errorf("expected no markers without a sector transition, got %d", len(rec.session.Markers()))
	}

	rec.Stop()
}

func TestSectorResolverIgnoresOtherVehicles(t *testing.T) {
	rec := startLoggingForSectors(t)

	other := &rfactor.VehicleScoring{
		IsPlayer: false,
		Sector:   rfactor.SectorTwo,
	}

	update := scoringUpdate(rfactor.PhaseGreenFlag, other)
	rec.OnScoring(&update)

	if len(rec.session.Markers()) != 0 {
		t.Errorf("expected non-player vehicles to be ignored")
	}

	rec.Stop()
}
