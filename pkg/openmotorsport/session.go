// Package openmotorsport implements the OpenMotorsport data logging
// format: sessions of grouped, unit-tagged channels with lap/sector
// markers, serialized as a ZIP archive containing a meta.xml document
// and one binary data file per channel.
package openmotorsport

import (
	"time"

	"github.com/pkg/errors"
)

const (
	NoSectors         = -1
	NoUser            = "No User"
	NoVehicleName     = "No Vehicle"
	NoVehicleCategory = ""
	NoTrackName       = "No Track"
	NoDataSource      = ""
)

var (
	ErrNoChannels      = errors.New("openmotorsport: session has no channels")
	ErrChannelNotFound = errors.New("openmotorsport: channel does not exist")
)

// Session is the aggregate root for one recording: metadata, the channel
// catalogue and the list of lap/sector markers. A Session is write-only
// while recording and read-only once it has been serialized.
type Session struct {
	User            string
	Vehicle         string
	VehicleCategory string
	Track           string
	DataSource      string
	Comment         string
	NumSectors      int
	Date            time.Time

	channels map[string]*Channel
	order    []*Channel
	markers  []float64
}

func NewSession() *Session {
	return &Session{
		User:            NoUser,
		Vehicle:         NoVehicleName,
		VehicleCategory: NoVehicleCategory,
		Track:           NoTrackName,
		DataSource:      NoDataSource,
		NumSectors:      NoSectors,
		Date:            time.Now(),

		channels: make(map[string]*Channel),
	}
}

func channelKey(name, group string) string {
	return name + "/" + group
}

// AddChannel registers a channel with the session. The channel's
// (name, group) pair must be unique within the session.
func (s *Session) AddChannel(channel *Channel) error {
	key := channelKey(channel.Name, channel.Group)

	if _, ok := s.channels[key]; ok {
		return errors.Errorf("openmotorsport: channel %q already exists", key)
	}

	s.channels[key] = channel
	s.order = append(s.order, channel)

	return nil
}

// Channel looks up a channel by name and group. A lookup for a channel
// that was never registered is an integration error and fails loudly.
func (s *Session) Channel(name, group string) (*Channel, error) {
	if len(s.channels) == 0 {
		return nil, ErrNoChannels
	}

	channel, ok := s.channels[channelKey(name, group)]

	if !ok {
		return nil, errors.Wrapf(ErrChannelNotFound, "%q (group %q)", name, group)
	}

	return channel, nil
}

// Channels returns all channels in the order they were registered.
func (s *Session) Channels() []*Channel {
	return s.order
}

// AddMarker records a marker at an absolute offset (in milliseconds)
// from the start of the session.
func (s *Session) AddMarker(milliseconds float64) {
	s.markers = append(s.markers, milliseconds)
}

// AddRelativeMarker records a marker relative to the previously recorded
// marker. With no previous marker it behaves like AddMarker.
func (s *Session) AddRelativeMarker(milliseconds float64) {
	if len(s.markers) == 0 {
		s.markers = append(s.markers, milliseconds)
	} else {
		s.markers = append(s.markers, s.markers[len(s.markers)-1]+milliseconds)
	}
}

func (s *Session) Markers() []float64 {
	return s.markers
}

// ISO8601Date formats the session's creation date for the meta.xml
// document and the archive entry timestamps.
func (s *Session) ISO8601Date() string {
	return s.Date.Format("2006-01-02T15:04:05")
}
