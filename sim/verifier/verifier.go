// Package verifier reconstructs decoded frames from a pipeline trace and
// checks them against the source frames that produced the stimulus.
package verifier

import (
	"fmt"

	"github.com/celskeggs/cobslink/sim/fixture"
	"github.com/celskeggs/cobslink/sim/util"
	"github.com/hashicorp/go-multierror"
)

// Frame is one decoded frame, tagged with the tick of the output_last
// transfer that completed it.
type Frame struct {
	Tick uint64
	Data []byte
}

// ExtractFrames walks a trace and groups delivered bytes into frames. A byte
// is delivered on any tick where output_valid and consumer_ready are both
// high; a delivered tick with output_last closes the frame. Bytes delivered
// after the final output_last form a trailing unterminated frame, so that
// truncation shows up in the comparison rather than vanishing.
func ExtractFrames(records []fixture.ResultRecord) []Frame {
	var frames []Frame
	var data []byte
	var lastTick uint64
	for tick, r := range records {
		if !r.Delivered() {
			continue
		}
		data = append(data, r.OutputByte)
		lastTick = uint64(tick)
		if r.OutputLast {
			frames = append(frames, Frame{Tick: uint64(tick), Data: data})
			data = nil
		}
	}
	if len(data) > 0 {
		frames = append(frames, Frame{Tick: lastTick, Data: data})
	}
	return frames
}

// FrameData strips the tick tags for comparison against source frames.
func FrameData(frames []Frame) [][]byte {
	data := make([][]byte, len(frames))
	for i, f := range frames {
		data[i] = f.Data
	}
	return data
}

func compareFrame(actual []byte, expected []byte) (mismatches int, lengthOk bool) {
	for i := 0; i < len(actual) && i < len(expected); i++ {
		if actual[i] != expected[i] {
			mismatches += 1
		}
	}
	return mismatches, len(actual) == len(expected)
}

// Compare checks decoded frames against the source frames, accumulating one
// error per discrepancy. A nil result means the streams match exactly.
func Compare(expected [][]byte, actual [][]byte) error {
	var result error
	if len(actual) != len(expected) {
		result = multierror.Append(result, fmt.Errorf(
			"expected %d frames, found %d", len(expected), len(actual)))
	}
	for i := 0; i < len(actual) && i < len(expected); i++ {
		mismatches, lengthOk := compareFrame(actual[i], expected[i])
		if !lengthOk {
			result = multierror.Append(result, fmt.Errorf(
				"frame %d: expected length %d, found %d\n\twanted: %s\n\tactual: %s",
				i, len(expected[i]), len(actual[i]),
				util.StringBytes(expected[i]), util.StringBytes(actual[i])))
		}
		if mismatches != 0 {
			result = multierror.Append(result, fmt.Errorf(
				"frame %d: %d of %d bytes mismatched", i, mismatches, len(expected[i])))
		}
	}
	return result
}
