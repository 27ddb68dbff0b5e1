package verifier

import (
	"strings"
	"testing"

	"github.com/celskeggs/cobslink/sim/cobs"
	"github.com/celskeggs/cobslink/sim/decoder"
	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/celskeggs/cobslink/sim/harness"
	"github.com/google/go-cmp/cmp"
)

func traceStream(stream []byte, tail int) []fixture.ResultRecord {
	var records []fixture.StimulusRecord
	for _, b := range stream {
		records = append(records, fixture.StimulusRecord{InputByte: b, InputValid: true, ConsumerReady: true})
	}
	for i := 0; i < tail; i++ {
		records = append(records, fixture.StimulusRecord{ConsumerReady: true})
	}
	return harness.Run(decoder.MakeDecoder(), records)
}

func TestExtractFramesFromTrace(t *testing.T) {
	frames := [][]byte{
		{0x11, 0x22},
		{0x41, 0x00, 0x42},
	}
	trace := traceStream(cobs.EncodeStream(frames), 4)
	got := ExtractFrames(trace)
	if len(got) != 2 {
		t.Fatalf("extracted %d frames, want 2", len(got))
	}
	if diff := cmp.Diff(frames, FrameData(got)); diff != "" {
		t.Errorf("frame payloads (-want +got):\n%s", diff)
	}
	if got[0].Tick >= got[1].Tick {
		t.Errorf("frame ticks out of order: %d then %d", got[0].Tick, got[1].Tick)
	}
	for _, f := range got {
		if !trace[f.Tick].Delivered() || !trace[f.Tick].OutputLast {
			t.Errorf("frame tick %d is not an output_last transfer", f.Tick)
		}
	}
}

func TestExtractFramesKeepsTruncatedTail(t *testing.T) {
	// stream ends without the separator, so the run's final byte stays
	// deferred and only 0x11 ever reaches the consumer
	trace := traceStream([]byte{0x00, 0x03, 0x11, 0x22}, 4)
	got := ExtractFrames(trace)
	if len(got) != 1 {
		t.Fatalf("extracted %d frames, want 1 truncated frame", len(got))
	}
	if diff := cmp.Diff([]byte{0x11}, got[0].Data); diff != "" {
		t.Errorf("truncated frame (-want +got):\n%s", diff)
	}
}

func TestExtractFramesIgnoresStalledTicks(t *testing.T) {
	trace := []fixture.ResultRecord{
		{OutputByte: 0x11, OutputValid: true, ConsumerReady: true},
		{OutputByte: 0x22, OutputValid: true, ConsumerReady: false},
		{OutputByte: 0x22, OutputValid: true, OutputLast: true, ConsumerReady: true},
	}
	got := ExtractFrames(trace)
	if len(got) != 1 || !cmp.Equal(got[0].Data, []byte{0x11, 0x22}) {
		t.Errorf("extracted %v, want one frame 11 22", got)
	}
	if got[0].Tick != 2 {
		t.Errorf("frame completed at tick %d, want 2", got[0].Tick)
	}
}

func TestCompareMatching(t *testing.T) {
	frames := [][]byte{{0x01}, {0x02, 0x03}}
	if err := Compare(frames, frames); err != nil {
		t.Errorf("matching streams compared unequal: %v", err)
	}
}

func TestCompareReportsEachDiscrepancy(t *testing.T) {
	expected := [][]byte{{0x01, 0x02}, {0x03}, {0x04}}
	actual := [][]byte{{0x01, 0xFF}, {0x03, 0x05}}
	err := Compare(expected, actual)
	if err == nil {
		t.Fatal("mismatched streams compared equal")
	}
	msg := err.Error()
	for _, want := range []string{
		"expected 3 frames, found 2",
		"frame 0: 1 of 2 bytes mismatched",
		"frame 1: expected length 1, found 2",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}
