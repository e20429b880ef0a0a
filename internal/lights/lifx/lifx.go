// Package lifx drives a LIFX group as if it were a three channel PWM light.
//
// Channel writes are buffered and sent to the group as one HSBK color when the
// light flushes.
package lifx

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pdf/golifx"
	"github.com/pdf/golifx/common"
	"github.com/pdf/golifx/protocol"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/scheerer/rgb-light/internal/logging"
	"github.com/scheerer/rgb-light/internal/util"
	"github.com/scheerer/rgb-light/lights"
)

var logger = logging.New("lifx")

const (
	kelvin            = 3500
	discoveryInterval = 15 * time.Second
	discoveryTimeout  = 5 * time.Second
)

// Group is the part of a LIFX group used by Output.
type Group interface {
	GetLabel() string
	SetColor(color common.Color, duration time.Duration) error
	SetPower(state bool) error
}

type Config struct {
	GroupName     string
	MaxBrightness float64
	MinBrightness float64
	// Duration is the fade the bulbs apply to each color change.
	Duration time.Duration
}

type Output struct {
	config   Config
	channels lights.Channels
	client   *golifx.Client

	groupMu sync.RWMutex
	group   Group

	levelsMu sync.Mutex
	levels   map[lights.Channel]uint8
	powered  bool
}

var _ lights.Output = (*Output)(nil)
var _ lights.Flusher = (*Output)(nil)

// New connects to the LAN and starts looking for the group in the background
// until ctx is done. Writes made before the group is found are dropped.
func New(ctx context.Context, config Config, channels lights.Channels) (*Output, error) {
	client, err := golifx.NewClient(&protocol.V2{})
	if err != nil {
		return nil, errors.Wrap(err, "creating LIFX client")
	}

	o := newOutput(config, channels)
	o.client = client
	go o.Start(ctx)
	return o, nil
}

func newOutput(config Config, channels lights.Channels) *Output {
	return &Output{
		config:   config,
		channels: channels,
		levels:   make(map[lights.Channel]uint8),
	}
}

func (o *Output) Start(ctx context.Context) {
	ticker := time.NewTicker(discoveryInterval)
	defer ticker.Stop()

	o.client.SetDiscoveryInterval(discoveryInterval)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, discoveryTimeout)
	o.discover(ctxWithTimeout)
	cancel()

	for {
		select {
		case <-ticker.C:
			ctxWithTimeout, cancel := context.WithTimeout(ctx, discoveryTimeout)
			o.discover(ctxWithTimeout)
			cancel()
		case <-ctx.Done():
			if err := o.client.Close(); err != nil {
				logger.With(zap.Error(err)).Warn("Failed to close LIFX client")
			}
			return
		}
	}
}

func (o *Output) discover(ctx context.Context) {
	logger.With(zap.String("group", o.config.GroupName)).Debug("LIFX discovery starting...")

	type result struct {
		group common.Group
		err   error
	}
	completed := make(chan result, 1)

	go func() {
		g, err := o.client.GetGroupByLabel(o.config.GroupName)
		completed <- result{group: g, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.With(zap.Error(ctx.Err())).Warn("LIFX discovery timed out")
	case r := <-completed:
		if r.err != nil || r.group == nil {
			logger.With(zap.String("group", o.config.GroupName), zap.Error(r.err)).Warn("Couldn't discover group")
			return
		}
		logger.With(zap.String("group", r.group.GetLabel())).Debug("LIFX group found")
		o.setGroup(r.group)
	}
}

func (o *Output) setGroup(g Group) {
	o.groupMu.Lock()
	o.group = g
	o.groupMu.Unlock()
}

// Configure registers ch. Channels other than the three given to New are ignored on flush.
func (o *Output) Configure(ch lights.Channel) {
	o.levelsMu.Lock()
	defer o.levelsMu.Unlock()

	o.levels[ch] = 0
}

func (o *Output) Write(ch lights.Channel, intensity uint8) {
	o.levelsMu.Lock()
	defer o.levelsMu.Unlock()

	o.levels[ch] = intensity
}

// Flush sends the buffered channels to the group. Black powers the group off
// and any other color powers it back on.
func (o *Output) Flush() {
	o.groupMu.RLock()
	group := o.group
	o.groupMu.RUnlock()

	if group == nil {
		logger.Debug("No LIFX group yet, dropping color")
		return
	}

	o.levelsMu.Lock()
	color := lights.Color{
		Red:   o.levels[o.channels.Red],
		Green: o.levels[o.channels.Green],
		Blue:  o.levels[o.channels.Blue],
	}
	wasPowered := o.powered
	o.levelsMu.Unlock()

	lifxColor := adjustColor(newLifxColor(color), o.config)

	logger.With(zap.Any("color", color),
		zap.Any("lifxColor", lifxColor)).
		Debug("Setting LIFX group color")

	if lifxColor.Brightness == 0 {
		if wasPowered {
			o.setPower(group, false)
		}
		return
	}

	if err := group.SetColor(lifxColor, o.config.Duration); err != nil {
		logger.With(zap.Error(err)).Warn("Failed to set color for LIFX group")
		return
	}
	if !wasPowered {
		o.setPower(group, true)
	}
}

func (o *Output) setPower(group Group, state bool) {
	if err := group.SetPower(state); err != nil {
		logger.With(zap.Bool("power", state), zap.Error(err)).Warn("Failed to set power for LIFX group")
		return
	}
	o.levelsMu.Lock()
	o.powered = state
	o.levelsMu.Unlock()
}

func newLifxColor(color lights.Color) common.Color {
	hue, saturation, brightness := util.RgbToHsb(color.Red, color.Green, color.Blue)

	return common.Color{
		Hue:        hue,
		Saturation: saturation,
		Brightness: brightness,
		Kelvin:     kelvin,
	}
}

// adjustColor keeps brightness inside the configured range. Near black colors
// are sent as black so the group can be switched off.
func adjustColor(color common.Color, config Config) common.Color {
	blackThreshold := 0.015 * 0xFFFF
	if color.Brightness <= uint16(blackThreshold) {
		return common.Color{Kelvin: kelvin}
	}

	color.Brightness = uint16(math.Min(config.MaxBrightness*0xFFFF, math.Max(config.MinBrightness*0xFFFF, float64(color.Brightness))))

	return color
}
