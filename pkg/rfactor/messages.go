package rfactor

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"

	"github.com/pkg/errors"
)

// Event identifies the message types sent by the in-game bridge.
type Event uint8

const (
	EventTelemetry     Event = 1
	EventScoring       Event = 2
	EventEnterRealtime Event = 3
	EventExitRealtime  Event = 4
	EventError         Event = 60
)

type Message interface {
	Event() Event
}

type HostError struct {
	error
}

func (HostError) Event() Event {
	return EventError
}

type CallbackFunc func(message Message)

// HostClient listens for bridge packets on UDP and hands each decoded
// message to a callback. Messages are delivered sequentially on a single
// goroutine.
type HostClient struct {
	listener *net.UDPConn

	cfn      func()
	ctx      context.Context
	callback CallbackFunc
}

func NewHostClient(addr string, port int, callback CallbackFunc) (*HostClient, error) {
	listener, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP(addr), Port: port})

	if err != nil {
		return nil, err
	}

	ctx, cfn := context.WithCancel(context.Background())

	h := &HostClient{
		ctx:      ctx,
		cfn:      cfn,
		callback: callback,
		listener: listener,
	}

	go h.serve()

	return h, nil
}

func (h *HostClient) Close() error {
	h.cfn()

	return h.listener.Close()
}

func (h *HostClient) serve() {
	buf := make([]byte, 4096)

	for {
		select {
		case <-h.ctx.Done():
			return
		default:
			n, _, err := h.listener.ReadFromUDP(buf)

			if err != nil {
				if h.ctx.Err() != nil {
					return
				}

				h.callback(HostError{err})
				continue
			}

			msg, err := handleMessage(bytes.NewReader(buf[:n]))

			if err != nil {
				h.callback(HostError{err})
				continue
			}

			h.callback(msg)
		}
	}
}

func readString(r io.Reader) string {
	var size uint8

	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return ""
	}

	s := make([]byte, int(size))

	if err := binary.Read(r, binary.LittleEndian, s); err != nil {
		return ""
	}

	return string(bytes.Replace(s, []byte("\x00"), nil, -1))
}

func handleMessage(r io.Reader) (Message, error) {
	var messageType uint8

	err := binary.Read(r, binary.LittleEndian, &messageType)

	if err != nil {
		return nil, err
	}

	switch Event(messageType) {
	case EventTelemetry:
		telemetry := TelemInfo{}

		err := binary.Read(r, binary.LittleEndian, &telemetry)

		if err != nil {
			return nil, err
		}

		return telemetry, nil
	case EventScoring:
		return handleScoring(r)
	case EventEnterRealtime:
		return EnterRealtime{}, nil
	case EventExitRealtime:
		return ExitRealtime{}, nil
	default:
		return nil, errors.Errorf("rfactor: unknown message type %d", messageType)
	}
}

func handleScoring(r io.Reader) (Message, error) {
	scoring := ScoringInfo{}

	err := binary.Read(r, binary.LittleEndian, &scoring.Session)

	if err != nil {
		return nil, err
	}

	err = binary.Read(r, binary.LittleEndian, &scoring.GamePhase)

	if err != nil {
		return nil, err
	}

	err = binary.Read(r, binary.LittleEndian, &scoring.CurrentET)

	if err != nil {
		return nil, err
	}

	scoring.TrackName = readString(r)

	var numVehicles int32

	err = binary.Read(r, binary.LittleEndian, &numVehicles)

	if err != nil {
		return nil, err
	}

	for i := int32(0); i < numVehicles; i++ {
		vehicle := VehicleScoring{}

		err = binary.Read(r, binary.LittleEndian, &vehicle.IsPlayer)

		if err != nil {
			return nil, err
		}

		vehicle.DriverName = readString(r)
		vehicle.VehicleName = readString(r)
		vehicle.VehicleClass = readString(r)

		err = binary.Read(r, binary.LittleEndian, &vehicle.TotalLaps)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.Sector)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.LastLapTime)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.LastSector1)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.LastSector2)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.CurSector1)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.CurSector2)

		if err != nil {
			return nil, err
		}

		err = binary.Read(r, binary.LittleEndian, &vehicle.LapStartET)

		if err != nil {
			return nil, err
		}

		scoring.Vehicles = append(scoring.Vehicles, vehicle)
	}

	return scoring, nil
}
