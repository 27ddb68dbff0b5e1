package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Span is a half-open tick interval [Start, End) during which a signal is
// high or a byte is held on the output bus.
type Span struct {
	Start float64
	End   float64
	Color color.Color
	Label string
}

// Mark is a point event on a lane, such as an output_last transfer.
type Mark struct {
	Tick  float64
	Glyph draw.GlyphStyle
}

// LanePlot draws one signal lane of a waveform: a baseline across the full
// tick range, filled boxes for spans, and glyphs for marks, all at a fixed
// nominal Y location.
type LanePlot struct {
	Spans     []Span
	Marks     []Mark
	Location  float64
	Height    vg.Length
	BoxStyle  draw.LineStyle
	TextStyle draw.TextStyle
}

var _ plot.Plotter = &LanePlot{}

func NewLanePlot(spans []Span, marks []Mark, loc float64, height vg.Length) *LanePlot {
	return &LanePlot{
		Spans:    spans,
		Marks:    marks,
		Location: loc,
		Height:   height,
		BoxStyle: plotter.DefaultLineStyle,
		TextStyle: text.Style{
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}
}

func (lp *LanePlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y := trY(lp.Location)
	if !c.ContainsY(y) {
		return
	}

	c.StrokeLine2(lp.BoxStyle, c.Min.X, y-lp.Height/2, c.Max.X, y-lp.Height/2)

	for _, span := range lp.Spans {
		xStart, xEnd := trX(span.Start), trX(span.End)
		pts := []vg.Point{
			{X: xStart, Y: y - lp.Height/2},
			{X: xEnd, Y: y - lp.Height/2},
			{X: xEnd, Y: y + lp.Height/2},
			{X: xStart, Y: y + lp.Height/2},
			{X: xStart, Y: y - lp.Height/2},
		}
		c.FillPolygon(span.Color, c.ClipPolygonX(pts[0:4]))
		c.StrokeLines(lp.BoxStyle, c.ClipLinesX(pts)...)
		if span.Label != "" {
			c.FillText(lp.TextStyle, vg.Point{
				X: (xStart + xEnd) / 2,
				Y: y,
			}, span.Label)
		}
	}

	for _, mark := range lp.Marks {
		c.DrawGlyph(mark.Glyph, vg.Point{
			X: trX(mark.Tick),
			Y: y + lp.Height/2,
		})
	}
}

type laneXYs LanePlot

func (lp *laneXYs) Len() int {
	return len(lp.Marks) + len(lp.Spans)*2
}

func (lp *laneXYs) XY(i int) (x, y float64) {
	if i < len(lp.Marks) {
		return lp.Marks[i].Tick, lp.Location
	}
	i -= len(lp.Marks)
	if i < len(lp.Spans) {
		return lp.Spans[i].Start, lp.Location
	}
	i -= len(lp.Spans)
	if i < len(lp.Spans) {
		return lp.Spans[i].End, lp.Location
	}
	panic("invalid index")
}

func (lp *LanePlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange((*laneXYs)(lp))
}
