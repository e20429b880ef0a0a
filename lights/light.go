package lights

import (
	"go.uber.org/zap"
)

// Light is a single RGB light. It is not safe for concurrent use; callers
// serialize access to a given Light.
type Light struct {
	channels Channels
	output   Output
	waiter   Waiter
	state    State
}

// New configures the three channels on output and returns a light that is
// off with white stored as its color. A nil waiter means Sleeper.
func New(output Output, channels Channels, waiter Waiter) *Light {
	if waiter == nil {
		waiter = Sleeper{}
	}

	output.Configure(channels.Red)
	output.Configure(channels.Green)
	output.Configure(channels.Blue)

	logger.With(zap.Any("channels", channels)).Debug("Configured light channels")

	return &Light{
		channels: channels,
		output:   output,
		waiter:   waiter,
		state:    State{Color: White},
	}
}

// State returns whether the light is on and its stored color. The color is
// returned whether or not the light is on.
func (l *Light) State() State {
	return l.state
}

func (l *Light) TurnOn() {
	var writes []Write
	l.state, writes = TurnOn(l.state, l.channels)
	l.write(writes)
}

// TurnOff writes zero to every channel. The stored color is kept for the next TurnOn.
func (l *Light) TurnOff() {
	var writes []Write
	l.state, writes = TurnOff(l.state, l.channels)
	l.write(writes)
}

// SetColor stores c. With opts.ApplyImmediately the light is turned on with c;
// otherwise nothing is written, even if the light is already on.
func (l *Light) SetColor(c Color, opts ApplyOptions) {
	var writes []Write
	l.state, writes = ApplyColor(l.state, l.channels, c, opts)
	l.write(writes)
}

// SetHSV converts hsv to RGB and sets it as with SetColor.
func (l *Light) SetHSV(hsv HSV, opts ApplyOptions) {
	l.SetColor(HSVToRGB(hsv, opts.NormalizeMixedBrightness), opts)
}

func (l *Light) write(writes []Write) {
	if len(writes) == 0 {
		return
	}
	for _, w := range writes {
		l.output.Write(w.Channel, w.Intensity)
	}
	if f, ok := l.output.(Flusher); ok {
		f.Flush()
	}
}
