//go:build tinygo && rp2040

// Firmware for a Raspberry Pi Pico with a common cathode RGB LED on GP13
// (red), GP14 (green) and GP15 (blue). It fades between a few colors and runs
// a rainbow forever.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/scheerer/rgb-light/internal/lights/pwm"
	"github.com/scheerer/rgb-light/lights"
)

func main() {
	// Sleep to catch prints.
	time.Sleep(2 * time.Second)

	channels := lights.Channels{
		Red:   lights.Channel(machine.GP13),
		Green: lights.Channel(machine.GP14),
		Blue:  lights.Channel(machine.GP15),
	}

	// GP13 is on slice 6, GP14 and GP15 share slice 7.
	out := pwm.New(map[lights.Channel]pwm.Group{
		channels.Red:   machine.PWM6,
		channels.Green: machine.PWM7,
		channels.Blue:  machine.PWM7,
	}, time.Millisecond)

	light := lights.New(out, channels, nil)
	ctx := context.Background()

	colors := []lights.Color{
		{Red: 255},
		{Red: 255, Green: 160},
		{Green: 255, Blue: 40},
		{Blue: 255},
	}

	for {
		for i := range colors {
			next := colors[(i+1)%len(colors)]
			if err := light.TransitionRGB(ctx, colors[i], next, 2*time.Second, lights.TransitionOptions{NormalizeMixedBrightness: true}); err != nil {
				println("pico: transition failed:", err.Error())
			}
		}
		if err := light.Rainbow(ctx, 1, 5*time.Second); err != nil {
			println("pico: rainbow failed:", err.Error())
		}

		light.TurnOff()
		time.Sleep(time.Second)
		light.TurnOn()
	}
}
