package testgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/celskeggs/cobslink/sim/cobs"
	"github.com/celskeggs/cobslink/sim/decoder"
	"github.com/celskeggs/cobslink/sim/harness"
	"github.com/celskeggs/cobslink/sim/verifier"
	"github.com/google/go-cmp/cmp"
)

func TestGenerateRoundTrip(t *testing.T) {
	for _, seed := range []int64{1, 2, 77, 1234} {
		cfg := DefaultConfig()
		cfg.Seed = seed
		cfg.Frames = 40
		sources, records := Generate(cfg)
		if len(sources) != cfg.Frames {
			t.Fatalf("seed %d: generated %d frames, want %d", seed, len(sources), cfg.Frames)
		}
		results := harness.Run(decoder.MakeDecoder(), records)
		decoded := verifier.ExtractFrames(results)
		var expected [][]byte
		for _, s := range sources {
			expected = append(expected, s.Frame)
		}
		if err := verifier.Compare(expected, verifier.FrameData(decoded)); err != nil {
			t.Errorf("seed %d: decoded stream does not match sources: %v", seed, err)
		}
		for i, f := range decoded {
			if i < len(sources) && f.Tick <= sources[i].Tick {
				t.Errorf("seed %d: frame %d decoded at tick %d, before its separator at tick %d",
					seed, i, f.Tick, sources[i].Tick)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	sources1, records1 := Generate(cfg)
	sources2, records2 := Generate(cfg)
	if diff := cmp.Diff(sources1, sources2); diff != "" {
		t.Errorf("same seed produced different frames:\n%s", diff)
	}
	if diff := cmp.Diff(records1, records2); diff != "" {
		t.Errorf("same seed produced different stimulus:\n%s", diff)
	}
}

func TestGenerateCleanStream(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InvalidRate = 0
	cfg.StallRate = 0
	cfg.ResetTicks = 1
	cfg.IdleTicks = 0
	_, records := Generate(cfg)
	for i, r := range records {
		if !r.ConsumerReady {
			t.Errorf("tick %d: stall generated with stall_rate 0", i)
		}
		if !r.Reset && !r.InputValid && i < len(records)-cfg.TailTicks {
			t.Errorf("tick %d: invalid tick generated with invalid_rate 0", i)
		}
	}
	if !records[0].Reset {
		t.Errorf("stimulus does not begin with a reset tick")
	}
}

func TestGarbageOnlyOnUnacceptedTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	sources, records := Generate(cfg)
	var accepted []byte
	for _, r := range records {
		if r.InputValid && r.ConsumerReady && !r.Reset {
			accepted = append(accepted, r.InputByte)
		}
	}
	decoded := cobs.DecodeStream(accepted)
	var expected [][]byte
	for _, s := range sources {
		expected = append(expected, s.Frame)
	}
	if err := verifier.Compare(expected, decoded); err != nil {
		t.Errorf("accepted byte stream is not a clean encoding of the sources: %v", err)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.toml")
	content := "seed = 42\nframes = 3\nstall_rate = 0.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 42 || cfg.Frames != 3 || cfg.StallRate != 0 {
		t.Errorf("configured keys not applied: %+v", cfg)
	}
	if cfg.MaxLength != DefaultConfig().MaxLength {
		t.Errorf("unset key did not keep its default: %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.toml")
	if err := os.WriteFile(path, []byte("min_length = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("min_length 0 accepted")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.MinLength = 0
	bad.StallRate = 1.0
	bad.TailTicks = 0
	err := bad.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, want := range []string{"min_length", "stall_rate", "tail_ticks"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}
