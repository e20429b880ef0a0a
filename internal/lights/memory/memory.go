// Package memory is an Output that keeps channel levels in memory. It is used
// for dry runs and in tests.
package memory

import (
	"sync"

	"go.uber.org/zap"

	"github.com/scheerer/rgb-light/internal/logging"
	"github.com/scheerer/rgb-light/lights"
)

var logger = logging.New("memory")

type Output struct {
	mu         sync.RWMutex
	configured map[lights.Channel]bool
	levels     map[lights.Channel]uint8
	writes     []lights.Write
	flushes    int
}

var _ lights.Output = (*Output)(nil)
var _ lights.Flusher = (*Output)(nil)

func New() *Output {
	return &Output{
		configured: make(map[lights.Channel]bool),
		levels:     make(map[lights.Channel]uint8),
	}
}

func (o *Output) Configure(ch lights.Channel) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.configured[ch] = true
	o.levels[ch] = 0
}

func (o *Output) Write(ch lights.Channel, intensity uint8) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.configured[ch] {
		logger.With(zap.Uint8("channel", uint8(ch))).Warn("Write to unconfigured channel")
	}
	o.levels[ch] = intensity
	o.writes = append(o.writes, lights.Write{Channel: ch, Intensity: intensity})
}

func (o *Output) Flush() {
	o.mu.Lock()
	o.flushes++
	o.mu.Unlock()

	logger.With(zap.Any("levels", o.Levels())).Debug("Channel levels")
}

// Configured reports whether ch has been configured.
func (o *Output) Configured(ch lights.Channel) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.configured[ch]
}

// Level returns the last intensity written to ch.
func (o *Output) Level(ch lights.Channel) uint8 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.levels[ch]
}

// Levels returns a copy of the current level of every configured channel.
func (o *Output) Levels() map[lights.Channel]uint8 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	levels := make(map[lights.Channel]uint8, len(o.levels))
	for ch, v := range o.levels {
		levels[ch] = v
	}
	return levels
}

// Color reads the levels of channels back as a color.
func (o *Output) Color(channels lights.Channels) lights.Color {
	return lights.Color{
		Red:   o.Level(channels.Red),
		Green: o.Level(channels.Green),
		Blue:  o.Level(channels.Blue),
	}
}

// Writes returns every write made so far, in order.
func (o *Output) Writes() []lights.Write {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return append([]lights.Write(nil), o.writes...)
}

func (o *Output) Flushes() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.flushes
}

// Reset forgets recorded writes and flushes. Levels are kept.
func (o *Output) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.writes = nil
	o.flushes = 0
}
