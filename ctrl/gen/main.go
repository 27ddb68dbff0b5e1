package main

import (
	"fmt"
	"os"
	"path"

	"github.com/celskeggs/cobslink/ctrl/util"
	"github.com/celskeggs/cobslink/sim/component"
	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/celskeggs/cobslink/sim/testgen"
)

func writeStimulus(path string, comment string, records []fixture.StimulusRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := fixture.MakeStimulusWriter(out)
	if err := w.Comment(comment); err != nil {
		_ = out.Close()
		return err
	}
	for _, r := range records {
		if err := w.Record(r); err != nil {
			_ = out.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeSources(path string, sources []component.FrameRecord) error {
	rec, err := component.MakeCSVFrameRecorder(path)
	if err != nil {
		return err
	}
	for _, s := range sources {
		if err := rec.Record(s.Tick, s.Channel, s.Frame); err != nil {
			_ = rec.Close()
			return err
		}
	}
	return rec.Close()
}

func main() {
	logger := util.InitLogger("gen")
	if len(os.Args) != 4 {
		logger.Fatal().Msgf("Usage: %s <config.toml> <stimulus.txt> <frames.csv>", path.Base(os.Args[0]))
	}
	cfg, err := testgen.LoadConfig(os.Args[1])
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	sources, records := testgen.Generate(cfg)
	comment := fmt.Sprintf("generated from %s with seed %d", os.Args[1], cfg.Seed)
	if err := writeStimulus(os.Args[2], comment, records); err != nil {
		logger.Fatal().Err(err).Str("path", os.Args[2]).Msg("could not write stimulus")
	}
	if err := writeSources(os.Args[3], sources); err != nil {
		logger.Fatal().Err(err).Str("path", os.Args[3]).Msg("could not write source frames")
	}
	logger.Info().
		Int("ticks", len(records)).
		Int("frames", len(sources)).
		Int64("seed", cfg.Seed).
		Msg("generated stimulus")
}
