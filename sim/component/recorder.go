// Package component provides shared recording infrastructure: frame streams
// produced by the stimulus generator and reconstructed by the comparator are
// persisted as CSV so the two sides can be diffed offline.
package component

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// Channel names used by the cobslink tools.
const (
	ChannelSource  = "source"
	ChannelDecoded = "decoded"
)

// CSVFrameRecorder appends frame records to a CSV file. A nil-output
// recorder discards everything, so callers can record unconditionally.
type CSVFrameRecorder struct {
	file   *os.File
	output *csv.Writer
}

func (r *CSVFrameRecorder) IsRecording() bool {
	return r.output != nil
}

// Record writes one frame, tagged with the tick at which it completed.
func (r *CSVFrameRecorder) Record(tick uint64, channel string, frame []byte) error {
	if channel == "" {
		panic("invalid empty channel name")
	}
	if r.output == nil {
		// not recording; discard
		return nil
	}
	err := r.output.Write([]string{
		strconv.FormatUint(tick, 10),
		channel,
		hex.EncodeToString(frame),
	})
	r.output.Flush()
	if err == nil {
		err = r.output.Error()
	}
	return err
}

func (r *CSVFrameRecorder) Close() error {
	if r.file == nil {
		return nil
	}
	r.output.Flush()
	err := r.output.Error()
	if cerr := r.file.Close(); cerr != nil {
		err = multierror.Append(err, cerr).ErrorOrNil()
	}
	return err
}

func MakeNullFrameRecorder() *CSVFrameRecorder {
	return &CSVFrameRecorder{}
}

func MakeCSVFrameRecorder(path string) (*CSVFrameRecorder, error) {
	w, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	err = cw.Write([]string{"Tick", "Channel", "Hex Bytes"})
	cw.Flush()
	if err == nil {
		err = cw.Error()
	}
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &CSVFrameRecorder{file: w, output: cw}, nil
}

// FrameRecord is one row of a frame recording.
type FrameRecord struct {
	Tick    uint64
	Channel string
	Frame   []byte
}

// DecodeRecording reads back a frame CSV written by CSVFrameRecorder.
func DecodeRecording(path string) (records []FrameRecord, re error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			re = multierror.Append(re, err)
		}
	}()
	recordsRaw, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recordsRaw) < 1 {
		return nil, errors.New("no header found")
	}
	if len(recordsRaw[0]) != 3 || recordsRaw[0][0] != "Tick" || recordsRaw[0][1] != "Channel" || recordsRaw[0][2] != "Hex Bytes" {
		return nil, fmt.Errorf("invalid header: %v", recordsRaw[0])
	}
	for _, record := range recordsRaw[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("invalid data record: %v", record)
		}
		tick, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, err
		}
		channel := record[1]
		if channel == "" {
			return nil, errors.New("invalid empty string channel")
		}
		frame, err := hex.DecodeString(record[2])
		if err != nil {
			return nil, err
		}
		records = append(records, FrameRecord{
			Tick:    tick,
			Channel: channel,
			Frame:   frame,
		})
	}
	return records, nil
}

// FramesForChannel filters a recording down to the frame payloads of one
// channel, in file order.
func FramesForChannel(records []FrameRecord, channel string) [][]byte {
	var frames [][]byte
	for _, r := range records {
		if r.Channel == channel {
			frames = append(frames, r.Frame)
		}
	}
	return frames
}
