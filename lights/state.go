package lights

// State is everything a light remembers: the last set color and whether it is on.
type State struct {
	Color Color
	On    bool
}

// Write is a single duty cycle write produced by a state change.
type Write struct {
	Channel   Channel
	Intensity uint8
}

// ApplyOptions control how a new color is applied.
type ApplyOptions struct {
	// ApplyImmediately turns the light on with the new color. When false the
	// color is only stored and shows on the next TurnOn.
	ApplyImmediately bool
	// NormalizeMixedBrightness scales mixed hues so they are no brighter than
	// primaries at the same value. Only used for HSV colors.
	NormalizeMixedBrightness bool
}

// DefaultApplyOptions turns the light on with the new color and leaves mixed
// hues unnormalized.
func DefaultApplyOptions() ApplyOptions {
	return ApplyOptions{ApplyImmediately: true}
}

// Writes returns the channel writes that make the hardware match s.
func (s State) Writes(ch Channels) []Write {
	c := Black
	if s.On {
		c = s.Color
	}
	return []Write{
		{Channel: ch.Red, Intensity: c.Red},
		{Channel: ch.Green, Intensity: c.Green},
		{Channel: ch.Blue, Intensity: c.Blue},
	}
}

func TurnOn(s State, ch Channels) (State, []Write) {
	s.On = true
	return s, s.Writes(ch)
}

func TurnOff(s State, ch Channels) (State, []Write) {
	s.On = false
	return s, s.Writes(ch)
}

// ApplyColor stores c. With opts.ApplyImmediately the light is turned on and
// the writes for c are returned, otherwise no writes are produced.
func ApplyColor(s State, ch Channels, c Color, opts ApplyOptions) (State, []Write) {
	s.Color = c
	if !opts.ApplyImmediately {
		return s, nil
	}
	return TurnOn(s, ch)
}
