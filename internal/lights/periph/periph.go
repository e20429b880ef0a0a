// Package periph writes light channels to GPIO pins with periph.io PWM.
package periph

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/scheerer/rgb-light/internal/logging"
	"github.com/scheerer/rgb-light/lights"
)

var logger = logging.New("periph")

// DefaultFrequency is used when Config.Frequency is zero.
const DefaultFrequency = physic.KiloHertz

type Config struct {
	Frequency physic.Frequency
}

// Output maps each channel number to the GPIO pin of the same number.
type Output struct {
	frequency physic.Frequency
	lookup    func(name string) gpio.PinIO

	mu   sync.RWMutex
	pins map[lights.Channel]gpio.PinIO
}

var _ lights.Output = (*Output)(nil)

// New initializes the host drivers.
func New(config Config) (*Output, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing periph host drivers")
	}
	return newOutput(config, gpioreg.ByName), nil
}

func newOutput(config Config, lookup func(name string) gpio.PinIO) *Output {
	if config.Frequency == 0 {
		config.Frequency = DefaultFrequency
	}
	return &Output{
		frequency: config.Frequency,
		lookup:    lookup,
		pins:      make(map[lights.Channel]gpio.PinIO),
	}
}

// Configure looks up the pin and drives it low. Unknown pins are logged and
// later writes to them are ignored.
func (o *Output) Configure(ch lights.Channel) {
	name := strconv.Itoa(int(ch))
	pin := o.lookup(name)
	if pin == nil {
		logger.With(zap.String("pin", name)).Error("GPIO pin not found")
		return
	}

	if err := pin.Out(gpio.Low); err != nil {
		logger.With(zap.String("pin", pin.Name()), zap.Error(err)).Error("Failed to configure GPIO pin as output")
		return
	}

	o.mu.Lock()
	o.pins[ch] = pin
	o.mu.Unlock()

	logger.With(zap.String("pin", pin.Name()), zap.Stringer("frequency", o.frequency)).Debug("Configured PWM pin")
}

func (o *Output) Write(ch lights.Channel, intensity uint8) {
	o.mu.RLock()
	pin, ok := o.pins[ch]
	o.mu.RUnlock()
	if !ok {
		return
	}

	if err := pin.PWM(Duty(intensity), o.frequency); err != nil {
		logger.With(zap.String("pin", pin.Name()), zap.Uint8("intensity", intensity), zap.Error(err)).Warn("Failed to set PWM duty cycle")
	}
}

// Halt drives every configured pin low.
func (o *Output) Halt() error {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var firstErr error
	for _, pin := range o.pins {
		if err := pin.Out(gpio.Low); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "halting pin %s", pin.Name())
		}
	}
	return firstErr
}

// Duty scales an 8-bit intensity to a periph duty cycle.
func Duty(intensity uint8) gpio.Duty {
	return gpio.Duty(uint64(gpio.DutyMax) * uint64(intensity) / 255)
}
