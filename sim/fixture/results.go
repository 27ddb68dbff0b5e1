package fixture

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/celskeggs/cobslink/sim/decoder"
	"github.com/celskeggs/cobslink/sim/util"
)

// ResultRecord is one tick of the recorded pipeline trace: the inputs as
// applied plus the outputs as observed, in file column order. InputLast is a
// placeholder column (the decoder has no input-side framing) and is always
// written as zero.
type ResultRecord struct {
	Reset         bool
	InputByte     byte
	InputLast     bool
	InputValid    bool
	ProducerReady bool
	OutputByte    byte
	OutputLast    bool
	OutputValid   bool
	ConsumerReady bool
}

// MakeResultRecord pairs one tick's stimulus with the outputs it produced.
func MakeResultRecord(in StimulusRecord, out decoder.TickOutput) ResultRecord {
	return ResultRecord{
		Reset:         in.Reset,
		InputByte:     in.InputByte,
		InputValid:    in.InputValid,
		ProducerReady: out.ProducerReady,
		OutputByte:    out.OutputByte,
		OutputLast:    out.OutputLast,
		OutputValid:   out.OutputValid,
		ConsumerReady: in.ConsumerReady,
	}
}

// Delivered reports whether this tick transferred a byte to the consumer.
func (r ResultRecord) Delivered() bool {
	return r.OutputValid && r.ConsumerReady
}

// ResultWriter emits a result fixture, one line per tick. Byte columns are
// 8-bit binary, right-justified in a 9-character field; a `- reset` comment
// line precedes every tick on which reset is asserted.
type ResultWriter struct {
	w *bufio.Writer
}

func MakeResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{w: bufio.NewWriter(w)}
}

func (rw *ResultWriter) Record(r ResultRecord) error {
	if r.Reset {
		if _, err := fmt.Fprintln(rw.w, "- reset"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(rw.w, "%s %9s %s %s %s %9s %s %s %s\n",
		bit(r.Reset),
		util.FormatBits(r.InputByte),
		bit(r.InputLast),
		bit(r.InputValid),
		bit(r.ProducerReady),
		util.FormatBits(r.OutputByte),
		bit(r.OutputLast),
		bit(r.OutputValid),
		bit(r.ConsumerReady))
	return err
}

func (rw *ResultWriter) Flush() error {
	return rw.w.Flush()
}

// fieldParser walks whitespace-split columns, remembering the first error.
type fieldParser struct {
	fields []string
	err    error
}

func (p *fieldParser) next() string {
	f := p.fields[0]
	p.fields = p.fields[1:]
	return f
}

func (p *fieldParser) bit() bool {
	v, err := util.ParseBit(p.next())
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) byteBits() byte {
	v, err := util.ParseBits(p.next())
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

// ReadResults parses a result fixture back into per-tick records.
func ReadResults(r io.Reader) ([]ResultRecord, error) {
	var records []ResultRecord
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '-' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 9 {
			return nil, fmt.Errorf("result line %d: expected 9 fields, found %d", lineNo, len(fields))
		}
		p := fieldParser{fields: fields}
		rec := ResultRecord{
			Reset:         p.bit(),
			InputByte:     p.byteBits(),
			InputLast:     p.bit(),
			InputValid:    p.bit(),
			ProducerReady: p.bit(),
			OutputByte:    p.byteBits(),
			OutputLast:    p.bit(),
			OutputValid:   p.bit(),
			ConsumerReady: p.bit(),
		}
		if p.err != nil {
			return nil, fmt.Errorf("result line %d: %w", lineNo, p.err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
