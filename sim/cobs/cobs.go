// Package cobs implements plain software COBS framing, used as the reference
// implementation for the cycle-accurate decode pipeline in sim/decoder.
//
// A frame is stuffed into runs: each run is a length byte (1-255) followed by
// length-1 literal non-zero bytes. A run shorter than 255 re-materializes one
// zero byte after its data on decode; a run of exactly 255 does not. The
// literal byte 0x00 never appears inside an encoded frame and serves as the
// frame separator on the wire.
package cobs

const (
	// Separator is the frame boundary byte in the encoded stream.
	Separator = 0x00
	// MaxRun is the special run length with no implied trailing zero.
	MaxRun = 0xFF
)

// EncodeFrame stuffs a single frame. The output contains no zero bytes and no
// separators; callers add those when assembling a stream. A frame ending
// exactly at a full 255-run gets no empty trailer run: 0xFF already means no
// implied zero follows.
func EncodeFrame(frame []byte) []byte {
	// worst case: one extra length byte per 254 payload bytes, plus one
	out := make([]byte, 0, len(frame)+len(frame)/254+1)
	lenAt := len(out)
	out = append(out, 0)
	run := byte(1)
	full := false
	for _, b := range frame {
		if b == Separator {
			out[lenAt] = run
			lenAt = len(out)
			out = append(out, 0)
			run = 1
			full = false
			continue
		}
		out = append(out, b)
		run++
		full = false
		if run == MaxRun {
			out[lenAt] = run
			lenAt = len(out)
			out = append(out, 0)
			run = 1
			full = true
		}
	}
	if full {
		return out[:lenAt]
	}
	out[lenAt] = run
	return out
}

// EncodeStream concatenates stuffed frames with a leading separator and one
// separator after each frame, which is the exact wire format the decode
// pipeline expects.
func EncodeStream(frames [][]byte) []byte {
	out := []byte{Separator}
	for _, frame := range frames {
		out = append(out, EncodeFrame(frame)...)
		out = append(out, Separator)
	}
	return out
}

// DecodeStream unstuffs a separator-delimited stream back into frames. It
// mirrors the pipeline's recovery behavior: malformed runs are cut short at
// the next separator, and empty inter-frame gaps produce no frames.
func DecodeStream(stream []byte) [][]byte {
	var frames [][]byte
	var frame []byte
	inFrame := false
	i := 0
	for i < len(stream) {
		if stream[i] == Separator {
			if inFrame {
				frames = append(frames, frame)
				frame = nil
				inFrame = false
			}
			i++
			continue
		}
		run := int(stream[i])
		i++
		if inFrame {
			// re-materialize the zero stripped between runs
			frame = append(frame, 0)
		} else {
			frame = []byte{}
			inFrame = true
		}
		for n := 1; n < run && i < len(stream) && stream[i] != Separator; n++ {
			frame = append(frame, stream[i])
			i++
		}
		if run == MaxRun && i < len(stream) && stream[i] != Separator {
			// no implied zero after a full run; splice directly into the next
			frame = appendRun(frame, stream, &i)
		}
	}
	if inFrame {
		frames = append(frames, frame)
	}
	return frames
}

// appendRun consumes one follow-on run after a 255-run without inserting the
// implied zero, recursing for chained 255-runs.
func appendRun(frame []byte, stream []byte, i *int) []byte {
	run := int(stream[*i])
	*i++
	for n := 1; n < run && *i < len(stream) && stream[*i] != Separator; n++ {
		frame = append(frame, stream[*i])
		*i++
	}
	if run == MaxRun && *i < len(stream) && stream[*i] != Separator {
		return appendRun(frame, stream, i)
	}
	return frame
}
