package main

import (
	"os"
	"path"

	"github.com/celskeggs/cobslink/ctrl/util"
	"github.com/celskeggs/cobslink/sim/component"
	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/celskeggs/cobslink/sim/verifier"
)

func readTrace(path string) ([]fixture.ResultRecord, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return fixture.ReadResults(in)
}

func writeDecoded(path string, frames []verifier.Frame) error {
	rec, err := component.MakeCSVFrameRecorder(path)
	if err != nil {
		return err
	}
	for _, f := range frames {
		if err := rec.Record(f.Tick, component.ChannelDecoded, f.Data); err != nil {
			_ = rec.Close()
			return err
		}
	}
	return rec.Close()
}

func main() {
	logger := util.InitLogger("check")
	if len(os.Args) != 3 && len(os.Args) != 4 {
		logger.Fatal().Msgf("Usage: %s <results.txt> <frames.csv> [decoded.csv]", path.Base(os.Args[0]))
	}
	trace, err := readTrace(os.Args[1])
	if err != nil {
		logger.Fatal().Err(err).Str("path", os.Args[1]).Msg("could not read trace")
	}
	recording, err := component.DecodeRecording(os.Args[2])
	if err != nil {
		logger.Fatal().Err(err).Str("path", os.Args[2]).Msg("could not read source frames")
	}
	expected := component.FramesForChannel(recording, component.ChannelSource)
	decoded := verifier.ExtractFrames(trace)
	if len(os.Args) == 4 {
		if err := writeDecoded(os.Args[3], decoded); err != nil {
			logger.Fatal().Err(err).Str("path", os.Args[3]).Msg("could not write decoded frames")
		}
	}
	if err := verifier.Compare(expected, verifier.FrameData(decoded)); err != nil {
		logger.Error().Msgf("decoded stream does not match sources:\n%v", err)
		os.Exit(1)
	}
	stats := verifier.MeasureTrace(trace)
	logger.Info().
		Int("ticks", stats.Ticks).
		Int("frames", stats.Frames).
		Int("accepted", stats.AcceptedBytes).
		Int("delivered", stats.DeliveredBytes).
		Int("stalls", stats.StallTicks).
		Float64("efficiency", stats.Efficiency()).
		Msg("decoded stream matches sources")
}
