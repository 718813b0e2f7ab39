package recorder

import (
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/openmotorsport"
)

const (
	UnitsKPH              = "kph"
	UnitsGee              = "g"
	UnitsDegrees          = "deg"
	UnitsLitres           = "l"
	UnitsRPM              = "rpm"
	UnitsCelsius          = "c"
	UnitsBoolean          = "boolean"
	UnitsPercent          = "%"
	UnitsGear             = "gear"
	UnitsMeters           = "m"
	UnitsNewtons          = "n"
	UnitsRadiansPerSecond = "rad/sec"
	UnitsPascal           = "pa"
	UnitsMilliseconds     = "ms"
)

const (
	GroupAcceleration = "Acceleration"
	GroupPosition     = "Position"
	GroupDriver       = "Driver"
	GroupEngine       = "Engine"

	GroupWheelLF = "Wheel LF"
	GroupWheelRF = "Wheel RF"
	GroupWheelLR = "Wheel LR"
	GroupWheelRR = "Wheel RR"
)

const (
	ChannelAccelerationX = "Acceleration X"
	ChannelAccelerationY = "Acceleration Y"
	ChannelAccelerationZ = "Acceleration Z"

	ChannelSpeed    = "Speed"
	ChannelPitch    = "Pitch"
	ChannelRoll     = "Roll"
	ChannelTime     = "Time"
	ChannelDistance = "Distance"

	ChannelGear     = "Gear"
	ChannelThrottle = "Throttle"
	ChannelBrake    = "Brake"
	ChannelClutch   = "Clutch"
	ChannelSteering = "Steering"

	ChannelRPM         = "RPM"
	ChannelClutchRPM   = "Clutch RPM"
	ChannelFuel        = "Fuel"
	ChannelOverheating = "Overheating"

	ChannelRotation             = "Rotation"
	ChannelSuspensionDeflection = "Suspension Deflection"
	ChannelRideHeight           = "Ride Height"
	ChannelTireLoad             = "Tire Load"
	ChannelLateralForce         = "Lateral Force"
	ChannelBrakeTemperature     = "Brake Temperature"
	ChannelPressure             = "Pressure"
	ChannelTemperatureLeft      = "Temperature Left"
	ChannelTemperatureCenter    = "Temperature Center"
	ChannelTemperatureRight     = "Temperature Right"
)

// wheel group order matches the wheel order in a telemetry frame
var WheelGroups = [4]string{GroupWheelLF, GroupWheelRF, GroupWheelLR, GroupWheelRR}

type channelDefinition struct {
	name  string
	units string
	group string
}

var channelCatalogue = []channelDefinition{
	{ChannelAccelerationX, UnitsGee, GroupAcceleration},
	{ChannelAccelerationY, UnitsGee, GroupAcceleration},
	{ChannelAccelerationZ, UnitsGee, GroupAcceleration},

	{ChannelSpeed, UnitsKPH, GroupPosition},
	{ChannelPitch, UnitsDegrees, GroupPosition},
	{ChannelRoll, UnitsDegrees, GroupPosition},
	{ChannelTime, UnitsMilliseconds, GroupPosition},
	{ChannelDistance, UnitsMeters, GroupPosition},

	{ChannelGear, UnitsGear, GroupDriver},
	{ChannelThrottle, UnitsPercent, GroupDriver},
	{ChannelBrake, UnitsPercent, GroupDriver},
	{ChannelClutch, UnitsPercent, GroupDriver},
	{ChannelSteering, UnitsPercent, GroupDriver},

	{ChannelRPM, UnitsRPM, GroupEngine},
	{ChannelClutchRPM, UnitsRPM, GroupEngine},
	{ChannelFuel, UnitsLitres, GroupEngine},
	{ChannelOverheating, UnitsBoolean, GroupEngine},
}

var wheelChannelCatalogue = []channelDefinition{
	{ChannelRotation, UnitsRadiansPerSecond, ""},
	{ChannelSuspensionDeflection, UnitsMeters, ""},
	{ChannelRideHeight, UnitsMeters, ""},
	{ChannelTireLoad, UnitsNewtons, ""},
	{ChannelLateralForce, UnitsNewtons, ""},
	{ChannelBrakeTemperature, UnitsCelsius, ""},
	{ChannelPressure, UnitsPascal, ""},
	{ChannelTemperatureLeft, UnitsCelsius, ""},
	{ChannelTemperatureCenter, UnitsCelsius, ""},
	{ChannelTemperatureRight, UnitsCelsius, ""},
}

// newLoggingSession creates a Session with the fixed channel catalogue
// registered in a stable order, ids assigned sequentially from zero.
func newLoggingSession(samplingIntervalMs int) (*openmotorsport.Session, error) {
	session := openmotorsport.NewSession()

	channelID := 0

	for _, definition := range channelCatalogue {
		channel := openmotorsport.NewChannel(channelID, definition.name, samplingIntervalMs, definition.units, definition.group)

		if err := session.AddChannel(channel); err != nil {
			return nil, err
		}

		channelID++
	}

	for _, wheel := range WheelGroups {
		for _, definition := range wheelChannelCatalogue {
			channel := openmotorsport.NewChannel(channelID, definition.name, samplingIntervalMs, definition.units, wheel)

			if err := session.AddChannel(channel); err != nil {
				return nil, err
			}

			channelID++
		}
	}

	return session, nil
}
