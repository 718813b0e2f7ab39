package openmotorsport

import (
	"archive/zip"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

const metaXMLNamespace = "http://66laps.org/ns/openmotorsport-1.0"

const (
	metaXMLPath       = "meta.xml"
	channelDataFormat = "data/%d.bin"
)

type metaDocument struct {
	XMLName   xml.Name     `xml:"openmotorsport"`
	Namespace string       `xml:"xmlns,attr"`
	Metadata  metaMetadata `xml:"metadata"`
	Channels  metaChannels `xml:"channels"`
	Markers   metaMarkers  `xml:"markers"`
}

type metaMetadata struct {
	User       string      `xml:"user"`
	Vehicle    metaVehicle `xml:"vehicle"`
	Venue      metaVenue   `xml:"venue"`
	Date       string      `xml:"date"`
	DataSource string      `xml:"datasource"`
	Comments   string      `xml:"comments"`
}

type metaVehicle struct {
	Name     string `xml:"name"`
	Category string `xml:"category,omitempty"`
}

type metaVenue struct {
	Name string `xml:"name"`
}

type metaChannels struct {
	Groups   []*metaGroup  `xml:"group"`
	Channels []metaChannel `xml:"channel"`
}

type metaGroup struct {
	Name     string        `xml:"name"`
	Channels []metaChannel `xml:"channel"`
}

type metaChannel struct {
	ID       int    `xml:"id,attr"`
	Units    string `xml:"units,attr,omitempty"`
	Interval *int   `xml:"interval,attr,omitempty"`
	Name     string `xml:"name"`
}

type metaMarkers struct {
	Sectors *int         `xml:"sectors,attr,omitempty"`
	Markers []metaMarker `xml:"marker"`
}

type metaMarker struct {
	Time float64 `xml:"time,attr"`
}

// Write serializes the session to an OpenMotorsport archive at the given
// path. Any failure aborts the whole write; no partial archive is left
// behind on a reported error.
func (s *Session) Write(path string) error {
	if len(s.order) == 0 {
		return ErrNoChannels
	}

	f, err := os.Create(path)

	if err != nil {
		return errors.Wrap(err, "openmotorsport: could not create archive")
	}

	defer f.Close()

	zw := zip.NewWriter(f)

	if err := s.writeMetaXML(zw); err != nil {
		return err
	}

	for _, channel := range s.order {
		if err := s.writeChannelData(zw, channel); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "openmotorsport: could not finalise archive")
	}

	return nil
}

func (s *Session) writeMetaXML(zw *zip.Writer) error {
	w, err := s.createEntry(zw, metaXMLPath)

	if err != nil {
		return errors.Wrapf(err, "openmotorsport: could not create %s", metaXMLPath)
	}

	doc := s.buildMetaDocument()

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return errors.Wrapf(err, "openmotorsport: could not write %s", metaXMLPath)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "\t")

	if err := encoder.Encode(doc); err != nil {
		return errors.Wrapf(err, "openmotorsport: could not write %s", metaXMLPath)
	}

	return nil
}

func (s *Session) writeChannelData(zw *zip.Writer, channel *Channel) error {
	name := fmt.Sprintf(channelDataFormat, channel.ID)

	w, err := s.createEntry(zw, name)

	if err != nil {
		return errors.Wrapf(err, "openmotorsport: could not create %s", name)
	}

	if err := binary.Write(w, binary.LittleEndian, channel.Samples()); err != nil {
		return errors.Wrapf(err, "openmotorsport: could not write %s", name)
	}

	return nil
}

func (s *Session) createEntry(zw *zip.Writer, name string) (io.Writer, error) {
	return zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: s.Date,
	})
}

func (s *Session) buildMetaDocument() *metaDocument {
	doc := &metaDocument{
		Namespace: metaXMLNamespace,
		Metadata: metaMetadata{
			User: s.User,
			Vehicle: metaVehicle{
				Name:     s.Vehicle,
				Category: s.VehicleCategory,
			},
			Venue:      metaVenue{Name: s.Track},
			Date:       s.ISO8601Date(),
			DataSource: s.DataSource,
			Comments:   s.Comment,
		},
	}

	// group nodes are created in order of first appearance
	groups := make(map[string]*metaGroup)

	for _, channel := range s.order {
		node := metaChannel{
			ID:    channel.ID,
			Units: channel.Units,
			Name:  channel.Name,
		}

		if channel.SampleInterval != VariableSampleInterval {
			interval := channel.SampleInterval
			node.Interval = &interval
		}

		if channel.Group == NoGroup {
			doc.Channels.Channels = append(doc.Channels.Channels, node)
			continue
		}

		group, ok := groups[channel.Group]

		if !ok {
			group = &metaGroup{Name: channel.Group}
			groups[channel.Group] = group
			doc.Channels.Groups = append(doc.Channels.Groups, group)
		}

		group.Channels = append(group.Channels, node)
	}

	if s.NumSectors != NoSectors {
		sectors := s.NumSectors
		doc.Markers.Sectors = &sectors
	}

	for _, marker := range s.markers {
		doc.Markers.Markers = append(doc.Markers.Markers, metaMarker{Time: marker})
	}

	return doc
}
