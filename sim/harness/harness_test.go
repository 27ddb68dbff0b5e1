package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/celskeggs/cobslink/sim/decoder"
	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/google/go-cmp/cmp"
)

func streamStimulus(stream []byte, tail int) []fixture.StimulusRecord {
	var records []fixture.StimulusRecord
	for _, b := range stream {
		records = append(records, fixture.StimulusRecord{InputByte: b, InputValid: true, ConsumerReady: true})
	}
	for i := 0; i < tail; i++ {
		records = append(records, fixture.StimulusRecord{ConsumerReady: true})
	}
	return records
}

func TestRunLiteralScenario(t *testing.T) {
	records := streamStimulus([]byte{0x00, 0x03, 0x11, 0x22, 0x00}, 3)
	results := Run(decoder.MakeDecoder(), records)
	if len(results) != len(records) {
		t.Fatalf("got %d result records for %d stimulus records", len(results), len(records))
	}
	for i, r := range results {
		if r.ProducerReady != records[i].ConsumerReady {
			t.Errorf("tick %d: producer_ready not mirrored", i)
		}
		if r.InputByte != records[i].InputByte {
			t.Errorf("tick %d: input byte not echoed into the trace", i)
		}
	}
	if !results[4].Delivered() || results[4].OutputByte != 0x11 {
		t.Errorf("tick 4: want 0x11 delivered, got %+v", results[4])
	}
	if !results[5].Delivered() || results[5].OutputByte != 0x22 || !results[5].OutputLast {
		t.Errorf("tick 5: want 0x22 delivered with last, got %+v", results[5])
	}
}

func TestRunToMatchesRun(t *testing.T) {
	records := streamStimulus([]byte{0x00, 0x04, 0xAA, 0xBB, 0xCC, 0x00}, 4)
	records = append([]fixture.StimulusRecord{{Reset: true, ConsumerReady: true}}, records...)

	want := Run(decoder.MakeDecoder(), records)

	dir := t.TempDir()
	path := filepath.Join(dir, "results.txt")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := RunTo(decoder.MakeDecoder(), records, fixture.MakeResultWriter(out)); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	got, err := fixture.ReadResults(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("streamed trace differs from in-memory trace (-want +got):\n%s", diff)
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	stimPath := filepath.Join(dir, "stimulus.txt")
	resultPath := filepath.Join(dir, "results.txt")

	stim, err := os.Create(stimPath)
	if err != nil {
		t.Fatal(err)
	}
	w := fixture.MakeStimulusWriter(stim)
	records := streamStimulus([]byte{0x00, 0x03, 0x11, 0x22, 0x00}, 3)
	for _, r := range records {
		if err := w.Record(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := stim.Close(); err != nil {
		t.Fatal(err)
	}

	ticks, err := RunFiles(stimPath, resultPath)
	if err != nil {
		t.Fatal(err)
	}
	if ticks != len(records) {
		t.Errorf("simulated %d ticks, want %d", ticks, len(records))
	}
	in, err := os.Open(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	results, err := fixture.ReadResults(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Run(decoder.MakeDecoder(), records), results); diff != "" {
		t.Errorf("file trace differs (-want +got):\n%s", diff)
	}
}
