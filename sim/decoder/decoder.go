// Package decoder models, cycle for cycle, a COBS decode pipeline with an
// AXI-style valid/ready handshake. One call to Step is one clock tick; the
// whole pipeline is a single step function over an explicit register file,
// with every next-register value computed from a snapshot of the previous
// state before any of them commit.
package decoder

// TickInput is the set of input signals sampled on one clock tick.
type TickInput struct {
	Reset         bool
	InputByte     byte
	InputValid    bool
	ConsumerReady bool
}

// TickOutput is the set of output signals driven during the same tick.
// ProducerReady mirrors ConsumerReady with no registered delay; OutputByte is
// the registered value loaded on the previous accepted tick; OutputValid and
// OutputLast are combinational over the current registers.
type TickOutput struct {
	ProducerReady bool
	OutputByte    byte
	OutputValid   bool
	OutputLast    bool
}

// State is the full register file of the pipeline. It has exactly one
// writer (step); all fields reset to zero synchronously when Reset is
// asserted, overriding any other update on that tick.
type State struct {
	// input capture pipeline
	InDelayByte byte // input sampled one accepted tick ago
	ValidDelay1 bool
	ValidDelay2 bool

	// frame & count state machine
	Count          byte // remaining bytes in the current run; never below 0
	Case255        bool // active run was loaded with length 255
	FrameSepDelay1 bool
	FrameSepDelay2 bool
	CounterLoadD1  bool

	// output stage
	PreValid   bool // inside a data run, ignoring external stalls
	OutputByte byte
}

// Decoder holds the pipeline state between ticks.
type Decoder struct {
	state State
}

func MakeDecoder() *Decoder {
	return &Decoder{}
}

// State returns the register file as visible during the upcoming tick.
func (d *Decoder) State() State {
	return d.state
}

// Step advances the pipeline by one clock tick.
func (d *Decoder) Step(in TickInput) TickOutput {
	out, next := step(d.state, in)
	d.state = next
	return out
}

// step is the pure tick function: state' = f(state, in). All combinational
// values and all next-register values derive from the old state, so no field
// ever observes a partially updated neighbor.
func step(s State, in TickInput) (TickOutput, State) {
	if in.Reset {
		// synchronous reset overrides everything, including a stalled consumer
		return TickOutput{ProducerReady: in.ConsumerReady}, State{}
	}

	// combinational, same-tick values over the old registers
	frameSep := s.InDelayByte == 0 && s.ValidDelay1
	counterLoad := (s.InDelayByte != 0 && s.FrameSepDelay1 && s.ValidDelay1) ||
		(s.Count == 1 && s.ValidDelay1)
	outputValid := (s.PreValid && s.ValidDelay2 && !(s.Count == 1 && !s.ValidDelay1)) ||
		(s.PreValid && s.Count == 1 && s.ValidDelay1 && !s.ValidDelay2)
	outputLast := frameSep && outputValid && in.ConsumerReady

	out := TickOutput{
		ProducerReady: in.ConsumerReady,
		OutputByte:    s.OutputByte,
		OutputValid:   outputValid,
		OutputLast:    outputLast,
	}

	if !in.ConsumerReady {
		// not an accepted tick: every register holds
		return out, s
	}

	next := s

	// input capture
	if in.InputValid {
		next.InDelayByte = in.InputByte
	}
	next.ValidDelay1 = in.InputValid
	next.ValidDelay2 = s.ValidDelay1

	// everything downstream tracks the byte occupying InDelayByte, which only
	// shifts on valid ticks, so it all holds across invalid gaps; shifting any
	// of these flags unconditionally would let the stages desynchronize over
	// a gap and duplicate a re-materialized zero
	if s.ValidDelay1 {
		next.FrameSepDelay1 = frameSep
		next.CounterLoadD1 = counterLoad
		next.FrameSepDelay2 = s.FrameSepDelay1

		// run-length counter
		if counterLoad {
			next.Count = s.InDelayByte
			next.Case255 = s.InDelayByte == 0xFF
		} else if s.Count != 0 {
			next.Count = s.Count - 1
		}

		// pre_valid: clear beats set on the same tick
		switch {
		case frameSep || (counterLoad && s.Case255):
			next.PreValid = false
		case (s.FrameSepDelay2 && !s.FrameSepDelay1) || (s.CounterLoadD1 && !s.FrameSepDelay1):
			next.PreValid = true
		}
	}

	// output register: a counter_load tick re-materializes the zero byte the
	// encoding stripped between runs
	if counterLoad {
		next.OutputByte = 0
	} else if s.ValidDelay1 {
		next.OutputByte = s.InDelayByte
	}

	return out, next
}
