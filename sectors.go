package recorder

import (
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"
)

// dataSourceName is written into every session's metadata.
const dataSourceName = "rFactor"

// numberOfTimedSectors is the number of sector splits the host exposes
// per lap. The in-game third sector time is not available from the API.
const numberOfTimedSectors = 2

// saveMetadata captures session metadata from the first scoring update
// after logging starts. Later updates never overwrite it.
func (r *Recorder) saveMetadata(info *rfactor.ScoringInfo, vehicle *rfactor.VehicleScoring) {
	r.session.User = vehicle.DriverName
	r.session.Vehicle = vehicle.VehicleName
	r.session.VehicleCategory = vehicle.VehicleClass
	r.session.Track = info.TrackName
	r.session.DataSource = dataSourceName
	r.session.NumSectors = numberOfTimedSectors
	r.session.Comment = info.Session.String()
}

// saveSectorTime records a marker for the sector that was just
// completed, keyed on the sector that has just been entered.
//
// Official split times only exist once a full lap has been completed;
// until then sector boundaries are approximated with the recorder's own
// elapsed-time counter as absolute markers. The two strategies are never
// mixed within one marker.
func (r *Recorder) saveSectorTime(vehicle *rfactor.VehicleScoring) {
	switch r.currentSector {
	case rfactor.SectorTwo:
		// completed sector 1: its duration is only known once a full
		// lap exists; on the out-lap no marker is recorded
		if vehicle.LastLapTime > 0 {
			r.session.AddRelativeMarker(SecondsToMilliseconds(float64(vehicle.LastLapTime - vehicle.LastSector2)))
		}

	case rfactor.SectorThree:
		// completed sector 2
		if vehicle.CurSector1 > 0 {
			r.session.AddRelativeMarker(SecondsToMilliseconds(float64(vehicle.CurSector1)))
		} else {
			r.session.AddMarker(SecondsToMilliseconds(r.totalElapsed))
		}

	case rfactor.SectorOne:
		// completed sector 3: lap boundary
		if vehicle.CurSector2 > 0 {
			r.session.AddRelativeMarker(SecondsToMilliseconds(float64(vehicle.CurSector2 - vehicle.CurSector1)))
		} else {
			r.session.AddMarker(SecondsToMilliseconds(r.totalElapsed))
		}
	}
}
