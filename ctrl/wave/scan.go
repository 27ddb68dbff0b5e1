package main

import (
	"fmt"
	"image/color"

	"github.com/celskeggs/cobslink/sim/fixture"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorReset = color.RGBA{R: 192, G: 64, B: 64, A: 255}
	colorValid = color.RGBA{R: 64, G: 192, B: 64, A: 255}
	colorStall = color.RGBA{R: 192, G: 192, B: 64, A: 255}
	colorOut   = color.RGBA{R: 128, G: 128, B: 255, A: 255}
	colorByte  = color.RGBA{R: 200, G: 200, B: 255, A: 255}
)

// spansWhere coalesces consecutive ticks satisfying pred into spans.
func spansWhere(records []fixture.ResultRecord, c color.Color, pred func(fixture.ResultRecord) bool) []Span {
	var spans []Span
	start := -1
	for i, r := range records {
		if pred(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			spans = append(spans, Span{Start: float64(start), End: float64(i), Color: c})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: float64(start), End: float64(len(records)), Color: c})
	}
	return spans
}

// deliverySpans renders each delivered byte as a one-tick box labeled with
// its hex value.
func deliverySpans(records []fixture.ResultRecord) []Span {
	var spans []Span
	for i, r := range records {
		if r.Delivered() {
			spans = append(spans, Span{
				Start: float64(i),
				End:   float64(i + 1),
				Color: colorByte,
				Label: fmt.Sprintf("%02x", r.OutputByte),
			})
		}
	}
	return spans
}

// lastMarks places a glyph over every output_last transfer, which is where
// one decoded frame ends.
func lastMarks(records []fixture.ResultRecord) []Mark {
	var marks []Mark
	for i, r := range records {
		if r.Delivered() && r.OutputLast {
			marks = append(marks, Mark{
				Tick: float64(i) + 0.5,
				Glyph: draw.GlyphStyle{
					Color:  color.Black,
					Radius: vg.Points(4),
					Shape:  draw.PyramidGlyph{},
				},
			})
		}
	}
	return marks
}

// BuildWavePlot lays the trace out as stacked signal lanes, one nominal Y
// per signal, ticks along X.
func BuildWavePlot(records []fixture.ResultRecord, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Tick"

	lanes := []struct {
		name  string
		spans []Span
		marks []Mark
	}{
		{"reset", spansWhere(records, colorReset, func(r fixture.ResultRecord) bool { return r.Reset }), nil},
		{"input_valid", spansWhere(records, colorValid, func(r fixture.ResultRecord) bool { return r.InputValid }), nil},
		{"stall", spansWhere(records, colorStall, func(r fixture.ResultRecord) bool { return !r.ConsumerReady }), nil},
		{"output_valid", spansWhere(records, colorOut, func(r fixture.ResultRecord) bool { return r.OutputValid }), nil},
		{"delivered", deliverySpans(records), lastMarks(records)},
	}
	names := make([]string, len(lanes))
	for i, lane := range lanes {
		p.Add(NewLanePlot(lane.spans, lane.marks, float64(i), vg.Points(18)))
		names[i] = lane.name
	}
	p.NominalY(names...)
	return p
}
