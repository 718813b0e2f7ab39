package openmotorsport

import (
	"testing"
)

func TestSessionDefaults(t *testing.T) {
	session := NewSession()

	if session.User != NoUser {
		t.Errorf("expected default user %q, got %q", NoUser, session.User)
	}

	if session.Vehicle != NoVehicleName {
		t.Errorf("expected default vehicle %q, got %q", NoVehicleName, session.Vehicle)
	}

	if session.Track != NoTrackName {
		t.Errorf("expected default track %q, got %q", NoTrackName, session.Track)
	}

	if session.NumSectors != NoSectors {
		t.Errorf("expected no sectors, got %d", session.NumSectors)
	}

	if session.Date.IsZero() {
		t.Error("expected session date to be set at construction")
	}
}

func TestSessionAddChannel(t *testing.T) {
	session := NewSession()

	if err := session.AddChannel(NewChannel(0, "Speed", 200, "kph", "Position")); err != nil {
		t.Fatal(err)
	}

	// same name in a different group is a different channel
	if err := session.AddChannel(NewChannel(1, "Speed", 200, "kph", "Wheel LF")); err != nil {
		t.Fatal(err)
	}

	if err := session.AddChannel(NewChannel(2, "Speed", 200, "kph", "Position")); err == nil {
		t.Error("expected an error adding a duplicate (name, group) pair")
	}

	channel, err := session.Channel("Speed", "Position")

	if err != nil {
		t.Fatal(err)
	}

	if channel.ID != 0 {
		t.Errorf("expected channel id 0, got %d", channel.ID)
	}
}

func TestSessionChannelLookupFailures(t *testing.T) {
	session := NewSession()

	if _, err := session.Channel("Speed", "Position"); err != ErrNoChannels {
		t.Errorf("expected ErrNoChannels, got %v", err)
	}

	if err := session.AddChannel(NewChannel(0, "Speed", 200, "kph", "Position")); err != nil {
		t.Fatal(err)
	}

	if _, err := session.Channel("Throttle", "Driver"); err == nil {
		t.Error("expected an error looking up an unregistered channel")
	}
}

type markerTest struct {
	name     string
	add      func(session *Session)
	expected []float64
}

func TestSessionMarkers(t *testing.T) {
	markerTests := []markerTest{
		{
			name: "absolute markers are recorded verbatim",
			add: func(session *Session) {
				session.AddMarker(1000)
				session.AddMarker(2500)
			},
			expected: []float64{1000, 2500},
		},
		{
			name: "relative marker with no predecessor is absolute",
			add: func(session *Session) {
				session.AddRelativeMarker(1500)
			},
			expected: []float64{1500},
		},
		{
			name: "relative markers accumulate",
			add: func(session *Session) {
				session.AddMarker(30000)
				session.AddRelativeMarker(28500)
				session.AddRelativeMarker(31000)
			},
			expected: []float64{30000, 58500, 89500},
		},
		{
			name: "absolute and relative markers mix",
			add: func(session *Session) {
				session.AddRelativeMarker(20000)
				session.AddMarker(45000)
				session.AddRelativeMarker(15000)
			},
			expected: []float64{20000, 45000, 60000},
		},
	}

	for _, test := range markerTests {
		t.Run(test.name, func(t *testing.T) {
			session := NewSession()
			test.add(session)

			markers := session.Markers()

			if len(markers) != len(test.expected) {
				t.Fatalf("expected %d markers, got %d", len(test.expected), len(markers))
			}

			for i, expected := range test.expected {
				if markers[i] != expected {
					t.Errorf("marker %d: expected %f, got %f", i, expected, markers[i])
				}
			}
		})
	}
}

func TestChannelWrite(t *testing.T) {
	channel := NewChannel(0, "Speed", 200, "kph", "Position")

	for i := 0; i < 10; i++ {
		channel.Write(float32(i))
	}

	if channel.Len() != 10 {
		t.Errorf("expected 10 samples, got %d", channel.Len())
	}

	samples := channel.Samples()

	if samples[9] != 9 {
		t.Errorf("expected last sample 9, got %f", samples[9])
	}
}
