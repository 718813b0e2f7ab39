package openmotorsport

const (
	// VariableSampleInterval indicates that a channel has no fixed sampling
	// interval and is sampled on events instead.
	VariableSampleInterval = -1

	NoUnits = ""
	NoGroup = ""
)

// channels get an initial capacity of 3000 samples (10 minutes @ 5Hz)
const dataBufferInitialCapacity = 3000

// Channel is a single named time series within a Session. Channels are
// identified by their (name, group) pair and carry an id which is unique
// within their Session.
type Channel struct {
	ID             int
	Name           string
	Group          string
	Units          string
	SampleInterval int // milliseconds, or VariableSampleInterval

	samples []float32
}

func NewChannel(id int, name string, sampleInterval int, units, group string) *Channel {
	return &Channel{
		ID:             id,
		Name:           name,
		Group:          group,
		Units:          units,
		SampleInterval: sampleInterval,

		samples: make([]float32, 0, dataBufferInitialCapacity),
	}
}

// Write appends a value to the end of the channel's data buffer.
func (c *Channel) Write(value float32) {
	c.samples = append(c.samples, value)
}

// Len is the number of samples written to the channel so far.
func (c *Channel) Len() int {
	return len(c.samples)
}

// Samples returns the channel's data buffer in write order. The returned
// slice must not be modified.
func (c *Channel) Samples() []float32 {
	return c.samples
}
