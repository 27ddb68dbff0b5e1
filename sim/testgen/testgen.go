// Package testgen generates randomized stimulus fixtures for the decode
// pipeline: it builds random frames, encodes them into a byte stream, and
// wraps the stream in reset ticks, idle ticks, backpressure stalls, and
// invalid-input gaps according to a TOML configuration.
package testgen

import (
	"fmt"
	"math/rand"

	"github.com/BurntSushi/toml"
	"github.com/celskeggs/cobslink/sim/cobs"
	"github.com/celskeggs/cobslink/sim/component"
	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/hashicorp/go-multierror"
)

// Config controls one generated stimulus. Rates are per-tick probabilities;
// a stall tick deasserts consumer_ready while the producer holds its byte,
// and an invalid tick presents a garbage byte with input_valid low.
type Config struct {
	Seed        int64   `toml:"seed"`
	Frames      int     `toml:"frames"`
	MinLength   int     `toml:"min_length"`
	MaxLength   int     `toml:"max_length"`
	ZeroBias    float64 `toml:"zero_bias"`
	InvalidRate float64 `toml:"invalid_rate"`
	StallRate   float64 `toml:"stall_rate"`
	ResetTicks  int     `toml:"reset_ticks"`
	IdleTicks   int     `toml:"idle_ticks"`
	TailTicks   int     `toml:"tail_ticks"`
}

func DefaultConfig() Config {
	return Config{
		Seed:        1,
		Frames:      20,
		MinLength:   1,
		MaxLength:   64,
		ZeroBias:    0.25,
		InvalidRate: 0.2,
		StallRate:   0.2,
		ResetTicks:  2,
		IdleTicks:   2,
		TailTicks:   8,
	}
}

// LoadConfig overlays a TOML file onto the defaults, so a config file only
// needs the keys it wants to change.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load generator config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var result error
	if c.Frames < 0 {
		result = multierror.Append(result, fmt.Errorf("frames must be nonnegative, not %d", c.Frames))
	}
	if c.MinLength < 1 {
		// an empty frame has no byte to carry output_last, so it can never
		// be delivered
		result = multierror.Append(result, fmt.Errorf("min_length must be at least 1, not %d", c.MinLength))
	}
	if c.MaxLength < c.MinLength {
		result = multierror.Append(result, fmt.Errorf("max_length %d is below min_length %d", c.MaxLength, c.MinLength))
	}
	if c.ZeroBias < 0 || c.ZeroBias > 1 {
		result = multierror.Append(result, fmt.Errorf("zero_bias %v is not a probability", c.ZeroBias))
	}
	if c.InvalidRate < 0 || c.InvalidRate >= 1 {
		result = multierror.Append(result, fmt.Errorf("invalid_rate %v must be in [0, 1)", c.InvalidRate))
	}
	if c.StallRate < 0 || c.StallRate >= 1 {
		result = multierror.Append(result, fmt.Errorf("stall_rate %v must be in [0, 1)", c.StallRate))
	}
	if c.ResetTicks < 0 || c.IdleTicks < 0 {
		result = multierror.Append(result, fmt.Errorf("tick counts must be nonnegative"))
	}
	if c.TailTicks < 1 {
		// the final frame resolves one accepted tick after its separator
		result = multierror.Append(result, fmt.Errorf("tail_ticks must be at least 1, not %d", c.TailTicks))
	}
	return result
}

func randFrame(rng *rand.Rand, c Config) []byte {
	frame := make([]byte, c.MinLength+rng.Intn(c.MaxLength-c.MinLength+1))
	for i := range frame {
		if rng.Float64() < c.ZeroBias {
			frame[i] = 0x00
		} else {
			frame[i] = byte(rng.Intn(256))
		}
	}
	return frame
}

// Generate builds a stimulus deterministically from the config's seed. It
// returns the source frames, tagged with the tick on which each frame's
// trailing separator is accepted, alongside the per-tick stimulus records.
func Generate(c Config) ([]component.FrameRecord, []fixture.StimulusRecord) {
	rng := rand.New(rand.NewSource(c.Seed))
	var sources []component.FrameRecord
	var records []fixture.StimulusRecord

	garbage := func() byte {
		return byte(rng.Intn(256))
	}
	idle := func(n int) {
		for i := 0; i < n; i++ {
			records = append(records, fixture.StimulusRecord{InputByte: garbage(), ConsumerReady: true})
		}
	}
	// present b until a tick where consumer_ready is high accepts it, with
	// invalid garbage ticks interleaved ahead of it
	feed := func(b byte) {
		for rng.Float64() < c.StallRate {
			records = append(records, fixture.StimulusRecord{InputByte: b, InputValid: true})
		}
		for rng.Float64() < c.InvalidRate {
			records = append(records, fixture.StimulusRecord{InputByte: garbage(), ConsumerReady: true})
		}
		records = append(records, fixture.StimulusRecord{InputByte: b, InputValid: true, ConsumerReady: true})
	}

	for i := 0; i < c.ResetTicks; i++ {
		records = append(records, fixture.StimulusRecord{InputByte: garbage(), Reset: true, ConsumerReady: true})
	}
	idle(c.IdleTicks)
	feed(cobs.Separator)
	for i := 0; i < c.Frames; i++ {
		frame := randFrame(rng, c)
		for _, b := range cobs.EncodeFrame(frame) {
			feed(b)
		}
		feed(cobs.Separator)
		sources = append(sources, component.FrameRecord{
			Tick:    uint64(len(records) - 1),
			Channel: component.ChannelSource,
			Frame:   frame,
		})
		idle(c.IdleTicks)
	}
	for i := 0; i < c.TailTicks; i++ {
		records = append(records, fixture.StimulusRecord{ConsumerReady: true})
	}
	return sources, records
}
