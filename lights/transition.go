package lights

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/rgb-light/internal/util"
)

// DefaultSteps is the number of steps a transition is split into.
const DefaultSteps = 100

// rainbowValue is the rainbow's HSV value at brightness 1.
const rainbowValue = 0.33

type TransitionOptions struct {
	// Steps is the number of interpolated colors. Zero or less means DefaultSteps.
	Steps int
	// NormalizeMixedBrightness is passed on to every SetHSV.
	NormalizeMixedBrightness bool
}

func (o TransitionOptions) steps() int {
	if o.Steps <= 0 {
		return DefaultSteps
	}
	return o.Steps
}

// Steps yields the n colors of a transition from from to to, excluding from
// and ending at to. Hue takes the shortest way around the color circle and is
// always wrapped into [0, 1). Saturation and value are interpolated linearly
// and not clamped. The sequence can be ranged over any number of times.
func Steps(from, to HSV, n int) iter.Seq[HSV] {
	if n <= 0 {
		n = 1
	}

	h1 := util.WrapHue(from.Hue)
	deltaH := util.WrapHue(to.Hue) - h1
	if deltaH > 0.5 {
		deltaH -= 1
	} else if deltaH < -0.5 {
		deltaH += 1
	}
	stepH := deltaH / float64(n)
	stepS := (to.Saturation - from.Saturation) / float64(n)
	stepV := (to.Value - from.Value) / float64(n)

	return func(yield func(HSV) bool) {
		for i := 1; i <= n; i++ {
			hsv := HSV{
				Hue:        util.WrapHue(h1 + stepH*float64(i)),
				Saturation: from.Saturation + stepS*float64(i),
				Value:      from.Value + stepV*float64(i),
			}
			if i == n {
				hsv.Saturation, hsv.Value = to.Saturation, to.Value
			}
			if !yield(hsv) {
				return
			}
		}
	}
}

// RainbowSteps yields n fully saturated colors with hues evenly spread over
// [0, 1), starting at 0.
func RainbowSteps(brightness float64, n int) iter.Seq[HSV] {
	if n <= 0 {
		n = 1
	}
	v := rainbowValue * brightness

	return func(yield func(HSV) bool) {
		for i := 0; i < n; i++ {
			if !yield(HSV{Hue: float64(i) / float64(n), Saturation: 1, Value: v}) {
				return
			}
		}
	}
}

// StepDelay splits total evenly over steps. Negative totals give zero.
func StepDelay(total time.Duration, steps int) time.Duration {
	if total <= 0 || steps <= 0 {
		return 0
	}
	return total / time.Duration(steps)
}

// Rainbow sweeps the hue once around the color circle over total, with
// mixed brightness normalized.
//
// Rainbow blocks until the sweep is done. If ctx is cancelled the sweep stops
// after the current step and ctx.Err() is returned; with a context that is
// never cancelled the returned error is always nil.
func (l *Light) Rainbow(ctx context.Context, brightness float64, total time.Duration) error {
	logger.With(zap.Float64("brightness", brightness), zap.Duration("duration", total)).Debug("Starting rainbow")

	opts := ApplyOptions{ApplyImmediately: true, NormalizeMixedBrightness: true}
	return l.play(ctx, RainbowSteps(brightness, DefaultSteps), StepDelay(total, DefaultSteps), opts)
}

// TransitionHSV applies from and then steps towards to over total. It blocks
// and handles ctx like Rainbow.
func (l *Light) TransitionHSV(ctx context.Context, from, to HSV, total time.Duration, opts TransitionOptions) error {
	n := opts.steps()
	logger.With(
		zap.Any("from", from),
		zap.Any("to", to),
		zap.Duration("duration", total),
		zap.Int("steps", n)).
		Debug("Starting HSV transition")

	apply := ApplyOptions{ApplyImmediately: true, NormalizeMixedBrightness: opts.NormalizeMixedBrightness}
	l.SetHSV(from, apply)
	return l.play(ctx, Steps(from, to, n), StepDelay(total, n), apply)
}

// TransitionRGB converts both colors to HSV and runs TransitionHSV.
func (l *Light) TransitionRGB(ctx context.Context, from, to Color, total time.Duration, opts TransitionOptions) error {
	return l.TransitionHSV(ctx, RGBToHSV(from), RGBToHSV(to), total, opts)
}

func (l *Light) play(ctx context.Context, colors iter.Seq[HSV], delay time.Duration, opts ApplyOptions) error {
	for hsv := range colors {
		l.SetHSV(hsv, opts)
		if err := l.waiter.Wait(ctx, delay); err != nil {
			logger.With(zap.Error(err), zap.Any("state", l.state)).Debug("Animation stopped")
			return err
		}
	}
	return nil
}
