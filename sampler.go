package recorder

import (
	"math"

	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/openmotorsport"
	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/rfactor"
)

// indices into TelemWheel.Temperature
const (
	wheelTemperatureLeft   = 0
	wheelTemperatureCenter = 1
	wheelTemperatureRight  = 2
)

// sampler derives physical quantities from raw telemetry frames and
// appends exactly one value to every registered channel per frame. It is
// owned by the recording worker; nothing else touches the channel
// buffers while it runs.
type sampler struct {
	session *openmotorsport.Session

	hasPreviousPosition bool
	previousPosition    rfactor.Vec3
	cumulativeDistance  float64
}

func newSampler(session *openmotorsport.Session) *sampler {
	return &sampler{session: session}
}

func norm(v rfactor.Vec3) float64 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)

	return math.Sqrt(x*x + y*y + z*z)
}

// planarAngle is the angle of v's Y component against the norm of its
// X/Z plane, in degrees.
func planarAngle(v rfactor.Vec3) float64 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)

	return RadiansToDegrees(math.Atan2(y, math.Sqrt(x*x+z*z)))
}

func (s *sampler) write(name, group string, value float64) error {
	channel, err := s.session.Channel(name, group)

	if err != nil {
		return err
	}

	channel.Write(float32(value))

	return nil
}

// sample appends one derived sample set for the frame. elapsed is the
// total session time in seconds at the point the frame was admitted.
func (s *sampler) sample(frame *rfactor.TelemInfo, elapsed float64) error {
	speed := norm(frame.LocalVel)

	// orientation basis columns (from the simulation's own reference code)
	forward := rfactor.Vec3{X: -frame.OriX.Z, Y: -frame.OriY.Z, Z: -frame.OriZ.Z}
	left := rfactor.Vec3{X: frame.OriX.X, Y: frame.OriY.X, Z: frame.OriZ.X}

	pitch := planarAngle(forward)
	roll := planarAngle(left)

	if s.hasPreviousPosition {
		dx := float64(s.previousPosition.X - frame.Pos.X)
		dy := float64(s.previousPosition.Y - frame.Pos.Y)
		dz := float64(s.previousPosition.Z - frame.Pos.Z)

		s.cumulativeDistance += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}

	s.previousPosition = frame.Pos
	s.hasPreviousPosition = true

	values := []struct {
		name  string
		group string
		value float64
	}{
		{ChannelAccelerationX, GroupAcceleration, MetersPerSecondSquaredToG(float64(frame.LocalAccel.X))},
		{ChannelAccelerationY, GroupAcceleration, MetersPerSecondSquaredToG(float64(frame.LocalAccel.Y))},
		{ChannelAccelerationZ, GroupAcceleration, MetersPerSecondSquaredToG(float64(frame.LocalAccel.Z))},

		{ChannelSpeed, GroupPosition, MetersPerSecondToKPH(speed)},
		{ChannelPitch, GroupPosition, pitch},
		{ChannelRoll, GroupPosition, roll},
		{ChannelTime, GroupPosition, SecondsToMilliseconds(elapsed)},
		{ChannelDistance, GroupPosition, s.cumulativeDistance},

		{ChannelGear, GroupDriver, float64(frame.Gear)},
		{ChannelThrottle, GroupDriver, RangeToPercent(float64(frame.UnfilteredThrottle))},
		{ChannelBrake, GroupDriver, RangeToPercent(float64(frame.UnfilteredBrake))},
		{ChannelClutch, GroupDriver, RangeToPercent(float64(frame.UnfilteredClutch))},
		{ChannelSteering, GroupDriver, RangeToPercent(float64(frame.UnfilteredSteering))},

		{ChannelRPM, GroupEngine, float64(frame.EngineRPM)},
		{ChannelClutchRPM, GroupEngine, float64(frame.ClutchRPM)},
		{ChannelFuel, GroupEngine, float64(frame.Fuel)},
		{ChannelOverheating, GroupEngine, float64(BoolToFloat(frame.Overheating))},
	}

	for _, v := range values {
		if err := s.write(v.name, v.group, v.value); err != nil {
			return err
		}
	}

	for i, group := range WheelGroups {
		wheel := &frame.Wheels[i]

		wheelValues := []struct {
			name  string
			value float64
		}{
			// rotation is sign-inverted from the raw signal
			{ChannelRotation, float64(-wheel.Rotation)},
			{ChannelSuspensionDeflection, float64(wheel.SuspensionDeflection)},
			{ChannelRideHeight, float64(wheel.RideHeight)},
			{ChannelTireLoad, float64(wheel.TireLoad)},
			{ChannelLateralForce, float64(wheel.LateralForce)},
			{ChannelBrakeTemperature, float64(wheel.BrakeTemp)},
			{ChannelPressure, float64(wheel.Pressure)},
			{ChannelTemperatureLeft, float64(wheel.Temperature[wheelTemperatureLeft])},
			{ChannelTemperatureCenter, float64(wheel.Temperature[wheelTemperatureCenter])},
			{ChannelTemperatureRight, float64(wheel.Temperature[wheelTemperatureRight])},
		}

		for _, v := range wheelValues {
			if err := s.write(v.name, group, v.value); err != nil {
				return err
			}
		}
	}

	return nil
}
