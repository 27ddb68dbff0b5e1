// Package fixture implements the text fixture formats shared by the test
// harness, the stimulus generator, the comparator, and the waveform viewer:
// a stimulus file with one input record per tick, and a result file with one
// record per tick capturing both sides of the decode pipeline.
//
// In both formats, blank lines and lines whose first character is '-' are
// comments and carry no ticks.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/celskeggs/cobslink/sim/decoder"
)

// StimulusRecord is one tick of input signals, in file column order.
type StimulusRecord struct {
	InputByte     byte
	InputValid    bool
	ConsumerReady bool
	Reset         bool
}

// TickInput converts a stimulus record into the decoder's input signals.
func (r StimulusRecord) TickInput() decoder.TickInput {
	return decoder.TickInput{
		Reset:         r.Reset,
		InputByte:     r.InputByte,
		InputValid:    r.InputValid,
		ConsumerReady: r.ConsumerReady,
	}
}

// ReadStimulus parses a stimulus fixture: four whitespace-separated integers
// per record, `input_byte input_valid consumer_ready reset`.
func ReadStimulus(r io.Reader) ([]StimulusRecord, error) {
	var records []StimulusRecord
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '-' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("stimulus line %d: expected 4 fields, found %d", lineNo, len(fields))
		}
		b, err := strconv.ParseUint(fields[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("stimulus line %d: invalid input byte: %w", lineNo, err)
		}
		var bits [3]bool
		for i, f := range fields[1:] {
			switch f {
			case "0":
				bits[i] = false
			case "1":
				bits[i] = true
			default:
				return nil, fmt.Errorf("stimulus line %d: invalid bit field %q", lineNo, f)
			}
		}
		records = append(records, StimulusRecord{
			InputByte:     byte(b),
			InputValid:    bits[0],
			ConsumerReady: bits[1],
			Reset:         bits[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// StimulusWriter emits a stimulus fixture, one record per tick.
type StimulusWriter struct {
	w *bufio.Writer
}

func MakeStimulusWriter(w io.Writer) *StimulusWriter {
	return &StimulusWriter{w: bufio.NewWriter(w)}
}

// Comment writes a non-record line, prefixed so that readers skip it.
func (sw *StimulusWriter) Comment(text string) error {
	_, err := fmt.Fprintf(sw.w, "- %s\n", text)
	return err
}

func (sw *StimulusWriter) Record(r StimulusRecord) error {
	_, err := fmt.Fprintf(sw.w, "%d %s %s %s\n",
		r.InputByte, bit(r.InputValid), bit(r.ConsumerReady), bit(r.Reset))
	return err
}

func (sw *StimulusWriter) Flush() error {
	return sw.w.Flush()
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
