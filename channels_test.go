package recorder

import (
	"testing"
)

func TestNewLoggingSession(t *testing.T) {
	session, err := newLoggingSession(200)

	if err != nil {
		t.Fatalf("could not create session, err: %s", err)
	}

	channels := session.Channels()

	expected := len(channelCatalogue) + len(WheelGroups)*len(wheelChannelCatalogue)

	if len(channels) != expected {
		t.Fatalf("expected %d channels, got %d", expected, len(channels))
	}

	seen := make(map[string]bool)

	for i, channel := range channels {
		if channel.ID != i {
			t.Errorf("%q/%q: expected id %d, got %d", channel.Group, channel.Name, i, channel.ID)
		}

		if channel.SampleInterval != 200 {
			t.Errorf("%q/%q: expected a 200ms interval, got %d", channel.Group, channel.Name, channel.SampleInterval)
		}

		key := channel.Name + "/" + channel.Group

		if seen[key] {
			t.Errorf("duplicate channel %q", key)
		}

		seen[key] = true
	}

	// every wheel group carries the full wheel catalogue
	for _, group := range WheelGroups {
		for _, definition := range wheelChannelCatalogue {
			if _, err := session.Channel(definition.name, group); err != nil {
				t.Errorf("missing %q in group %q", definition.name, group)
			}
		}
	}

	if _, err := session.Channel(ChannelSpeed, GroupPosition); err != nil {
		t.Errorf("missing speed channel, err: %s", err)
	}
}

func TestNewLoggingSessionUnits(t *testing.T) {
	session, err := newLoggingSession(100)

	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		group string
		units string
	}{
		{ChannelSpeed, GroupPosition, UnitsKPH},
		{ChannelAccelerationX, GroupAcceleration, UnitsGee},
		{ChannelThrottle, GroupDriver, UnitsPercent},
		{ChannelRPM, GroupEngine, UnitsRPM},
		{ChannelRotation, GroupWheelLR, UnitsRadiansPerSecond},
		{ChannelTemperatureCenter, GroupWheelRR, UnitsCelsius},
	}

	for _, c := range cases {
		channel, err := session.Channel(c.name, c.group)

		if err != nil {
			t.Errorf("%q/%q: %s", c.group, c.name, err)
			continue
		}

		if channel.Units != c.units {
			t.Errorf("%q/%q: expected units %q, got %q", c.group, c.name, c.units, channel.Units)
		}
	}
}
