// Package lights drives a single RGB light made of three PWM channels.
//
// A Light keeps the last set color and an on/off flag. Colors can be set as
// 8-bit RGB or as HSV, and the light can be animated with blocking, step
// counted transitions. The hardware is reached only through Output and the
// delay between animation steps only through Waiter.
package lights

import (
	"context"
	"time"

	"github.com/scheerer/rgb-light/internal/logging"
	"github.com/scheerer/rgb-light/internal/util"
)

var logger = logging.New("lights")

type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

var (
	Black = Color{}
	White = Color{Red: 255, Green: 255, Blue: 255}
)

// HSV is a color in hue, saturation, value form. Hue is circular over [0, 1):
// 0 and 1 name the same hue.
type HSV struct {
	Hue        float64
	Saturation float64
	Value      float64
}

// Channel identifies one physical output line, usually a pin number.
type Channel uint8

// Channels are the three output lines of a light.
type Channels struct {
	Red   Channel
	Green Channel
	Blue  Channel
}

// Output is the hardware a light writes to.
type Output interface {
	// Configure prepares ch as a PWM output. It is called once per channel.
	Configure(ch Channel)
	// Write sets the duty cycle of ch, 0 being off and 255 fully on.
	Write(ch Channel, intensity uint8)
}

// Flusher is implemented by outputs that batch channel writes. Flush is called
// once after the writes for a color have been made.
type Flusher interface {
	Flush()
}

// Waiter suspends an animation between steps.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// WaiterFunc adapts a function to Waiter.
type WaiterFunc func(ctx context.Context, d time.Duration) error

func (f WaiterFunc) Wait(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// Sleeper waits on a timer. It returns early with the context error if ctx is done.
type Sleeper struct{}

func (Sleeper) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RGBToHSV converts c to HSV with value normalized to [0, 1].
func RGBToHSV(c Color) HSV {
	h, s, v := util.RgbToHsv(c.Red, c.Green, c.Blue)
	return HSV{Hue: h, Saturation: s, Value: v}
}

// HSVToRGB converts hsv to an 8-bit color. Saturation and value are clamped
// to [0, 1] and hue wraps around.
func HSVToRGB(hsv HSV, normalizeMixedBrightness bool) Color {
	r, g, b := util.HsvToRgb(hsv.Hue, hsv.Saturation, hsv.Value, normalizeMixedBrightness)
	return Color{Red: r, Green: g, Blue: b}
}
