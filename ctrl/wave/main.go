package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/celskeggs/cobslink/ctrl/util"
	"github.com/celskeggs/cobslink/sim/fixture"
	"gonum.org/v1/plot/vg"
)

func readTrace(path string) ([]fixture.ResultRecord, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return fixture.ReadResults(in)
}

func main() {
	logger := util.InitLogger("wave")
	output := flag.String("o", "", "render to this file (png/svg/pdf) instead of opening a window")
	title := flag.String("title", "", "plot title (defaults to the trace filename)")
	flag.Parse()
	if flag.NArg() != 1 {
		logger.Fatal().Msgf("Usage: %s [-o out.png] [-title text] <results.txt>", filepath.Base(os.Args[0]))
	}
	trace, err := readTrace(flag.Arg(0))
	if err != nil {
		logger.Fatal().Err(err).Str("path", flag.Arg(0)).Msg("could not read trace")
	}
	if len(trace) == 0 {
		logger.Fatal().Str("path", flag.Arg(0)).Msg("trace contains no ticks")
	}
	name := *title
	if name == "" {
		name = filepath.Base(flag.Arg(0))
	}
	p := BuildWavePlot(trace, name)
	if *output != "" {
		width := vg.Points(100 + 12*float64(len(trace)))
		if width > vg.Points(8000) {
			width = vg.Points(8000)
		}
		if err := SaveWave(p, width, vg.Points(320), *output); err != nil {
			logger.Fatal().Err(err).Str("path", *output).Msg("could not render waveform")
		}
		logger.Info().Str("path", *output).Int("ticks", len(trace)).Msg("rendered waveform")
		return
	}
	if err := DisplayWave(p); err != nil {
		logger.Fatal().Err(err).Msg("could not open waveform window")
	}
}
