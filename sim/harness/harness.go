// Package harness drives the decode pipeline tick by tick from a stimulus
// fixture and records the per-tick trace to a result fixture. It performs no
// decoding work of its own: the decoder sees exactly the fixture's tick
// sequence, one Step per record.
package harness

import (
	"os"

	"github.com/celskeggs/cobslink/sim/decoder"
	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/hashicorp/go-multierror"
)

// Run steps the decoder once per stimulus record and returns the trace.
func Run(dec *decoder.Decoder, records []fixture.StimulusRecord) []fixture.ResultRecord {
	results := make([]fixture.ResultRecord, 0, len(records))
	for _, rec := range records {
		out := dec.Step(rec.TickInput())
		results = append(results, fixture.MakeResultRecord(rec, out))
	}
	return results
}

// RunTo steps the decoder once per stimulus record, streaming each result
// record to the writer as it is produced.
func RunTo(dec *decoder.Decoder, records []fixture.StimulusRecord, w *fixture.ResultWriter) error {
	for _, rec := range records {
		out := dec.Step(rec.TickInput())
		if err := w.Record(fixture.MakeResultRecord(rec, out)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// RunFiles reads a stimulus fixture from stimulusPath and writes the result
// fixture to resultPath, returning the number of ticks simulated.
func RunFiles(stimulusPath, resultPath string) (ticks int, re error) {
	in, err := os.Open(stimulusPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := in.Close(); err != nil {
			re = multierror.Append(re, err)
		}
	}()
	records, err := fixture.ReadStimulus(in)
	if err != nil {
		return 0, err
	}
	out, err := os.Create(resultPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := out.Close(); err != nil {
			re = multierror.Append(re, err)
		}
	}()
	if err := RunTo(decoder.MakeDecoder(), records, fixture.MakeResultWriter(out)); err != nil {
		return 0, err
	}
	return len(records), nil
}
