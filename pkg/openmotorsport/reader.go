package openmotorsport

import (
	"archive/zip"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Read loads an OpenMotorsport archive back into a Session. It is the
// inverse of Session.Write for every field that the writer serializes.
func Read(path string) (*Session, error) {
	zr, err := zip.OpenReader(path)

	if err != nil {
		return nil, errors.Wrap(err, "openmotorsport: could not open archive")
	}

	defer zr.Close()

	doc, err := readMetaXML(&zr.Reader)

	if err != nil {
		return nil, err
	}

	session := &Session{
		User:            doc.Metadata.User,
		Vehicle:         doc.Metadata.Vehicle.Name,
		VehicleCategory: doc.Metadata.Vehicle.Category,
		Track:           doc.Metadata.Venue.Name,
		DataSource:      doc.Metadata.DataSource,
		Comment:         doc.Metadata.Comments,
		NumSectors:      NoSectors,

		channels: make(map[string]*Channel),
	}

	session.Date, err = time.ParseInLocation("2006-01-02T15:04:05", doc.Metadata.Date, time.Local)

	if err != nil {
		return nil, errors.Wrap(err, "openmotorsport: could not parse session date")
	}

	if doc.Markers.Sectors != nil {
		session.NumSectors = *doc.Markers.Sectors
	}

	for _, marker := range doc.Markers.Markers {
		session.AddMarker(marker.Time)
	}

	for _, node := range doc.Channels.Channels {
		if err := readChannel(&zr.Reader, session, node, NoGroup); err != nil {
			return nil, err
		}
	}

	for _, group := range doc.Channels.Groups {
		for _, node := range group.Channels {
			if err := readChannel(&zr.Reader, session, node, group.Name); err != nil {
				return nil, err
			}
		}
	}

	return session, nil
}

func readMetaXML(zr *zip.Reader) (*metaDocument, error) {
	for _, f := range zr.File {
		if f.Name != metaXMLPath {
			continue
		}

		r, err := f.Open()

		if err != nil {
			return nil, errors.Wrapf(err, "openmotorsport: could not open %s", metaXMLPath)
		}

		defer r.Close()

		var doc metaDocument

		if err := xml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "openmotorsport: could not parse %s", metaXMLPath)
		}

		return &doc, nil
	}

	return nil, errors.Errorf("openmotorsport: archive has no %s", metaXMLPath)
}

func readChannel(zr *zip.Reader, session *Session, node metaChannel, group string) error {
	interval := VariableSampleInterval

	if node.Interval != nil {
		interval = *node.Interval
	}

	channel := NewChannel(node.ID, node.Name, interval, node.Units, group)

	samples, err := readChannelData(zr, node.ID)

	if err != nil {
		return err
	}

	channel.samples = samples

	return session.AddChannel(channel)
}

func readChannelData(zr *zip.Reader, id int) ([]float32, error) {
	name := fmt.Sprintf(channelDataFormat, id)

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}

		r, err := f.Open()

		if err != nil {
			return nil, errors.Wrapf(err, "openmotorsport: could not open %s", name)
		}

		defer r.Close()

		samples := make([]float32, f.UncompressedSize64/4)

		if err := binary.Read(r, binary.LittleEndian, samples); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "openmotorsport: could not read %s", name)
		}

		return samples, nil
	}

	return nil, errors.Errorf("openmotorsport: archive has no %s", name)
}
