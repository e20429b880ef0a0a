// Package ambient makes a light follow the color of a screen.
package ambient

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/rgb-light/internal/logging"
	"github.com/scheerer/rgb-light/internal/screen"
	"github.com/scheerer/rgb-light/lights"
)

var logger = logging.New("ambient")

type Config struct {
	CaptureInterval time.Duration
	ColorAlgo       string
	PixelGridSize   int
	ScreenNumber    int
	// FadeDuration is how long the light takes to reach each new screen color.
	FadeDuration time.Duration
	FadeSteps    int

	NormalizeMixedBrightness bool
}

// CaptureFunc grabs the current contents of a display.
type CaptureFunc func(screenNumber int) (*image.RGBA, error)

// Run captures the screen every CaptureInterval and fades light to its color
// until ctx is done. It only returns an error for a bad ColorAlgo.
func Run(ctx context.Context, config Config, light *lights.Light, capture CaptureFunc) error {
	computeColor, err := screen.Algorithm(config.ColorAlgo)
	if err != nil {
		return err
	}
	if capture == nil {
		capture = screen.CaptureDisplay
	}

	opts := lights.TransitionOptions{Steps: config.FadeSteps, NormalizeMixedBrightness: config.NormalizeMixedBrightness}
	var lastWarning time.Time

	for {
		if ctx.Err() != nil {
			return nil
		}

		startTime := time.Now()
		img, err := capture(config.ScreenNumber)
		captureScreenDuration := time.Since(startTime)
		if err != nil {
			logger.With(zap.Error(err)).Error("Failed to capture screen")
			if !sleep(ctx, config.CaptureInterval-captureScreenDuration) {
				return nil
			}
			continue
		}

		colorCalculationStart := time.Now()
		c := computeColor(img, config.PixelGridSize)
		colorCalculationDuration := time.Since(colorCalculationStart)

		// the context may have been cancelled while capturing or calculating
		if ctx.Err() != nil {
			return nil
		}

		setColorStart := time.Now()
		if current := light.State(); !current.On || current.Color != c {
			from := current.Color
			if !current.On {
				from = lights.Black
			}
			if err := light.TransitionRGB(ctx, from, c, config.FadeDuration, opts); err != nil {
				return nil
			}
		}
		setColorDuration := time.Since(setColorStart)

		totalDuration := time.Since(startTime)
		if totalDuration > config.CaptureInterval {
			if time.Since(lastWarning) > 10*time.Second {
				logger.With(
					zap.Stringer("captureScreenDuration", captureScreenDuration),
					zap.Stringer("colorCalculationDuration", colorCalculationDuration),
					zap.Stringer("setColorDuration", setColorDuration),
					zap.Stringer("totalDuration", totalDuration)).
					Warn("Cannot keep up with CAPTURE_INTERVAL. Consider increasing PIXEL_GRID_SIZE, CAPTURE_INTERVAL or lowering FADE_DURATION.")
				lastWarning = time.Now()
			}
			continue
		}
		if !sleep(ctx, config.CaptureInterval-totalDuration) {
			return nil
		}
	}
}

// sleep waits for d and reports whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	return lights.Sleeper{}.Wait(ctx, d) == nil
}
