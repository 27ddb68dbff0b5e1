package main

import (
	"os"
	"path"

	"github.com/celskeggs/cobslink/ctrl/util"
	"github.com/celskeggs/cobslink/sim/harness"
)

func main() {
	logger := util.InitLogger("run")
	if len(os.Args) != 3 {
		logger.Fatal().Msgf("Usage: %s <stimulus.txt> <results.txt>", path.Base(os.Args[0]))
	}
	ticks, err := harness.RunFiles(os.Args[1], os.Args[2])
	if err != nil {
		logger.Fatal().Err(err).Msg("simulation failed")
	}
	logger.Info().Int("ticks", ticks).Str("results", os.Args[2]).Msg("simulation complete")
}
