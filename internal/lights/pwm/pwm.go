//go:build tinygo

// Package pwm writes light channels to microcontroller PWM peripherals.
package pwm

import (
	"machine"
	"time"

	"github.com/scheerer/rgb-light/lights"
)

// Group is a PWM peripheral such as machine.PWM4 on the RP2040.
type Group interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type output struct {
	group   Group
	channel uint8
}

// Output drives each channel's pin through the PWM group it is wired to. The
// channel number is the pin number.
type Output struct {
	period     time.Duration
	groups     map[lights.Channel]Group
	configured map[Group]bool
	outputs    map[lights.Channel]output
}

var _ lights.Output = (*Output)(nil)

func New(groups map[lights.Channel]Group, period time.Duration) *Output {
	return &Output{
		period:     period,
		groups:     groups,
		configured: make(map[Group]bool),
		outputs:    make(map[lights.Channel]output),
	}
}

func (o *Output) Configure(ch lights.Channel) {
	group, ok := o.groups[ch]
	if !ok {
		println("pwm: no PWM group for pin", int(ch))
		return
	}

	if !o.configured[group] {
		if err := group.Configure(machine.PWMConfig{Period: uint64(o.period)}); err != nil {
			println("pwm: could not configure PWM:", err.Error())
			return
		}
		o.configured[group] = true
	}

	c, err := group.Channel(machine.Pin(ch))
	if err != nil {
		println("pwm: could not get channel for pin", int(ch), err.Error())
		return
	}
	o.outputs[ch] = output{group: group, channel: c}
}

func (o *Output) Write(ch lights.Channel, intensity uint8) {
	out, ok := o.outputs[ch]
	if !ok {
		return
	}
	out.group.Set(out.channel, uint32(uint64(out.group.Top())*uint64(intensity)/255))
}
