package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"

	"github.com/scheerer/rgb-light/ambient"
	"github.com/scheerer/rgb-light/internal/lights/lifx"
	"github.com/scheerer/rgb-light/internal/lights/memory"
	"github.com/scheerer/rgb-light/internal/lights/periph"
	"github.com/scheerer/rgb-light/internal/logging"
	"github.com/scheerer/rgb-light/lights"
)

var logger = logging.New("main")

func main() {
	defer logger.Sync()

	config, err := parseConfig()
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to parse environment variables")
	}

	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		logger.With(zap.String("LOG_LEVEL", config.LogLevel), zap.Error(err)).Warn("Unknown log level, using info")
	}
	logging.GetLeveler().SetDefaultLevel(level)

	logger.With(zap.Any("config", config)).Info("Starting RGB light")

	logger.Info("Adjust OUTPUT to choose where the light is driven. Valid values are: [MEMORY, PERIPH, LIFX]")
	logger.Info("Adjust MODE to choose what the light does. Valid values are: [SET, RAINBOW, TRANSITION, AMBIENT]")
	logger.Info("Adjust RED_PIN, GREEN_PIN and BLUE_PIN to the GPIO numbers the LED is wired to.")
	logger.Info("Adjust FROM_COLOR and TO_COLOR (hex, e.g. #ff8800) for SET and TRANSITION.")
	logger.Info("Adjust DURATION to change how long RAINBOW and TRANSITION take, and STEPS to change how smooth TRANSITION is.")
	logger.Info("Adjust FADE_DURATION and FADE_STEPS to change how AMBIENT fades between screen colors.")
	logger.Info("Set LOOP=true to repeat RAINBOW and TRANSITION until stopped.")
	logger.Info("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, config)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-shutdown:
		logger.Info("Shutting down")
	case <-done:
	}
	cancel()
	<-done
}

// Run drives a light with the configured output and mode until the mode
// finishes or ctx is done. The light is turned off on the way out.
func Run(ctx context.Context, config Config) {
	output, closeOutput, err := newOutput(ctx, config)
	if err != nil {
		logger.With(zap.String("OUTPUT", config.Output), zap.Error(err)).Fatal("Failed to create light output")
	}
	defer closeOutput()

	light := lights.New(output, config.Channels(), nil)
	defer light.TurnOff()

	if err := runMode(ctx, config, light); err != nil && ctx.Err() == nil {
		logger.With(zap.String("MODE", config.Mode), zap.Error(err)).Error("Light mode failed")
	}

	if m, ok := output.(*memory.Output); ok {
		logger.With(zap.Any("state", light.State()), zap.Int("writes", len(m.Writes()))).Info("Final light state")
	}
}

func newOutput(ctx context.Context, config Config) (lights.Output, func(), error) {
	noop := func() {}

	switch config.Output {
	case "PERIPH":
		out, err := periph.New(periph.Config{Frequency: physic.Frequency(config.PWMFrequencyHz) * physic.Hertz})
		if err != nil {
			return nil, noop, err
		}
		return out, func() {
			if err := out.Halt(); err != nil {
				logger.With(zap.Error(err)).Warn("Failed to halt PWM pins")
			}
		}, nil
	case "LIFX":
		out, err := lifx.New(ctx, config.LifxConfig(), config.Channels())
		if err != nil {
			return nil, noop, err
		}
		return out, noop, nil
	default:
		return memory.New(), noop, nil
	}
}

func runMode(ctx context.Context, config Config, light *lights.Light) error {
	from, to := config.Colors()

	switch config.Mode {
	case "SET":
		light.SetColor(from, lights.DefaultApplyOptions())
		<-ctx.Done()
		return nil
	case "AMBIENT":
		return ambient.Run(ctx, config.AmbientConfig(), light, nil)
	case "TRANSITION":
		return repeat(ctx, config.Loop, func() error {
			if err := light.TransitionRGB(ctx, from, to, config.Duration, config.TransitionOptions()); err != nil {
				return err
			}
			from, to = to, from
			return nil
		})
	default:
		return repeat(ctx, config.Loop, func() error {
			return light.Rainbow(ctx, config.Brightness, config.Duration)
		})
	}
}

func repeat(ctx context.Context, loop bool, f func() error) error {
	for {
		if err := f(); err != nil {
			return err
		}
		if !loop || ctx.Err() != nil {
			return nil
		}
	}
}
