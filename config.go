package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/scheerer/rgb-light/ambient"
	"github.com/scheerer/rgb-light/internal/lights/lifx"
	"github.com/scheerer/rgb-light/lights"
)

type Config struct {
	Output   string `env:"OUTPUT" envDefault:"MEMORY"`
	Mode     string `env:"MODE" envDefault:"RAINBOW"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RedPin         int `env:"RED_PIN" envDefault:"12"`
	GreenPin       int `env:"GREEN_PIN" envDefault:"13"`
	BluePin        int `env:"BLUE_PIN" envDefault:"18"`
	PWMFrequencyHz int `env:"PWM_FREQUENCY_HZ" envDefault:"1000"`

	Duration                 time.Duration `env:"DURATION" envDefault:"5s"`
	Brightness               float64       `env:"BRIGHTNESS" envDefault:"1"`
	FromColor                string        `env:"FROM_COLOR" envDefault:"#ff0000"`
	ToColor                  string        `env:"TO_COLOR" envDefault:"#0000ff"`
	Steps                    int           `env:"STEPS" envDefault:"100"`
	NormalizeMixedBrightness bool          `env:"NORMALIZE_MIXED_BRIGHTNESS" envDefault:"false"`
	Loop                     bool          `env:"LOOP" envDefault:"false"`

	LightGroupName string  `env:"LIGHT_GROUP_NAME" envDefault:"ARCADE"`
	MaxBrightness  float64 `env:"MAX_BRIGHTNESS" envDefault:"0.65"`
	MinBrightness  float64 `env:"MIN_BRIGHTNESS" envDefault:"0"`

	CaptureInterval time.Duration `env:"CAPTURE_INTERVAL" envDefault:"80ms"`
	ColorAlgo       string        `env:"COLOR_ALGO" envDefault:"AVERAGE"`
	PixelGridSize   int           `env:"PIXEL_GRID_SIZE" envDefault:"5"`
	ScreenNumber    int           `env:"SCREEN_NUMBER" envDefault:"0"`
	FadeDuration    time.Duration `env:"FADE_DURATION" envDefault:"50ms"`
	FadeSteps       int           `env:"FADE_STEPS" envDefault:"3"`
}

var (
	outputs = []string{"MEMORY", "PERIPH", "LIFX"}
	modes   = []string{"SET", "RAINBOW", "TRANSITION", "AMBIENT"}
)

func parseConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return config, err
	}
	config.Output = strings.ToUpper(config.Output)
	config.Mode = strings.ToUpper(config.Mode)
	return config, config.validate()
}

func (c Config) validate() error {
	if !slices.Contains(outputs, c.Output) {
		return fmt.Errorf("OUTPUT must be one of %v, got %q", outputs, c.Output)
	}
	if !slices.Contains(modes, c.Mode) {
		return fmt.Errorf("MODE must be one of %v, got %q", modes, c.Mode)
	}
	pins := []struct {
		name string
		pin  int
	}{
		{"RED_PIN", c.RedPin},
		{"GREEN_PIN", c.GreenPin},
		{"BLUE_PIN", c.BluePin},
	}
	for _, p := range pins {
		if p.pin < 0 || p.pin > 255 {
			return fmt.Errorf("%s must be between 0 and 255, got %d", p.name, p.pin)
		}
	}
	if c.PWMFrequencyHz <= 0 {
		return fmt.Errorf("PWM_FREQUENCY_HZ must be positive, got %d", c.PWMFrequencyHz)
	}
	if c.FadeSteps <= 0 {
		return fmt.Errorf("FADE_STEPS must be positive, got %d", c.FadeSteps)
	}
	if _, err := parseColor("FROM_COLOR", c.FromColor); err != nil {
		return err
	}
	if _, err := parseColor("TO_COLOR", c.ToColor); err != nil {
		return err
	}
	return nil
}

func (c Config) Channels() lights.Channels {
	return lights.Channels{
		Red:   lights.Channel(c.RedPin),
		Green: lights.Channel(c.GreenPin),
		Blue:  lights.Channel(c.BluePin),
	}
}

// Colors returns FROM_COLOR and TO_COLOR. The config must be valid.
func (c Config) Colors() (lights.Color, lights.Color) {
	from, _ := parseColor("FROM_COLOR", c.FromColor)
	to, _ := parseColor("TO_COLOR", c.ToColor)
	return from, to
}

func (c Config) TransitionOptions() lights.TransitionOptions {
	return lights.TransitionOptions{Steps: c.Steps, NormalizeMixedBrightness: c.NormalizeMixedBrightness}
}

func (c Config) LifxConfig() lifx.Config {
	return lifx.Config{
		GroupName:     c.LightGroupName,
		MinBrightness: c.MinBrightness,
		MaxBrightness: c.MaxBrightness,
		// the bulbs fade between the samples of an ambient fade
		Duration: lights.StepDelay(c.FadeDuration, c.FadeSteps),
	}
}

func (c Config) AmbientConfig() ambient.Config {
	return ambient.Config{
		CaptureInterval:          c.CaptureInterval,
		ColorAlgo:                c.ColorAlgo,
		PixelGridSize:            c.PixelGridSize,
		ScreenNumber:             c.ScreenNumber,
		FadeDuration:             c.FadeDuration,
		FadeSteps:                c.FadeSteps,
		NormalizeMixedBrightness: c.NormalizeMixedBrightness,
	}
}

// parseColor reads a hex color such as "#ff8800".
func parseColor(name, value string) (lights.Color, error) {
	c, err := colorful.Hex(value)
	if err != nil {
		return lights.Color{}, fmt.Errorf("%s: %w", name, err)
	}
	r, g, b := c.RGB255()
	return lights.Color{Red: r, Green: g, Blue: b}, nil
}
