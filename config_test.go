package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheerer/rgb-light/internal/lights/memory"
	"github.com/scheerer/rgb-light/lights"
)

func TestParseConfigDefaults(t *testing.T) {
	config, err := parseConfig()
	require.NoError(t, err)

	assert.Equal(t, "MEMORY", config.Output)
	assert.Equal(t, "RAINBOW", config.Mode)
	assert.Equal(t, 5*time.Second, config.Duration)
	assert.Equal(t, lights.Channels{Red: 12, Green: 13, Blue: 18}, config.Channels())

	from, to := config.Colors()
	assert.Equal(t, lights.Color{Red: 255}, from)
	assert.Equal(t, lights.Color{Blue: 255}, to)

	assert.Equal(t, 3, config.AmbientConfig().FadeSteps)
	assert.Equal(t, 50*time.Millisecond/3, config.LifxConfig().Duration)
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("OUTPUT", "periph")
	t.Setenv("MODE", "transition")
	t.Setenv("RED_PIN", "5")
	t.Setenv("FROM_COLOR", "#102030")
	t.Setenv("STEPS", "20")
	t.Setenv("NORMALIZE_MIXED_BRIGHTNESS", "true")
	t.Setenv("DURATION", "250ms")

	config, err := parseConfig()
	require.NoError(t, err)

	assert.Equal(t, "PERIPH", config.Output)
	assert.Equal(t, "TRANSITION", config.Mode)
	assert.Equal(t, lights.Channel(5), config.Channels().Red)
	assert.Equal(t, lights.TransitionOptions{Steps: 20, NormalizeMixedBrightness: true}, config.TransitionOptions())
	assert.Equal(t, 250*time.Millisecond, config.Duration)

	from, _ := config.Colors()
	assert.Equal(t, lights.Color{Red: 0x10, Green: 0x20, Blue: 0x30}, from)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"OUTPUT":           "DMX",
		"MODE":             "STROBE",
		"GREEN_PIN":        "300",
		"PWM_FREQUENCY_HZ": "0",
		"TO_COLOR":         "blue",
		"FADE_STEPS":       "0",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := parseConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestRunModeTransition(t *testing.T) {
	t.Setenv("MODE", "TRANSITION")
	t.Setenv("STEPS", "4")
	t.Setenv("DURATION", "0s")
	config, err := parseConfig()
	require.NoError(t, err)

	out := memory.New()
	light := lights.New(out, config.Channels(), nil)

	require.NoError(t, runMode(context.Background(), config, light))
	assert.Equal(t, lights.Color{Blue: 255}, light.State().Color)
	assert.Equal(t, 5, out.Flushes())
}

func TestRunModeRainbowLoopStopsOnCancel(t *testing.T) {
	t.Setenv("LOOP", "true")
	t.Setenv("DURATION", "0s")
	t.Setenv("STEPS", "4")
	config, err := parseConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	rounds := 0
	waiter := lights.WaiterFunc(func(ctx context.Context, d time.Duration) error {
		rounds++
		if rounds == 2*lights.DefaultSteps {
			cancel()
		}
		return ctx.Err()
	})
	light := lights.New(memory.New(), config.Channels(), waiter)

	err = runMode(ctx, config, light)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2*lights.DefaultSteps, rounds)
}

func TestParseConfigReportsFirstInvalidPin(t *testing.T) {
	t.Setenv("RED_PIN", "300")
	t.Setenv("BLUE_PIN", "-1")

	for range 10 {
		_, err := parseConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RED_PIN")
	}
}
