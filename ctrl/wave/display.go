package main

import (
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vggio"
)

type waveWidget struct {
	Plot *plot.Plot
	DPI  int
}

func (w *waveWidget) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	width := vg.Points(float64(size.X) * vg.Inch.Points() / float64(w.DPI))
	height := vg.Points(float64(size.Y) * vg.Inch.Points() / float64(w.DPI))
	cnv := vggio.New(gtx, width, height, vggio.UseDPI(w.DPI))
	w.Plot.Draw(draw.New(cnv))
	return layout.Dimensions{Size: size}
}

// DisplayWave opens a window showing the waveform; Q or Escape closes it.
func DisplayWave(p *plot.Plot) error {
	widget := &waveWidget{
		Plot: p,
		DPI:  128,
	}

	go func() {
		win := app.NewWindow(
			app.Title("Waveform Viewer"),
			app.Size(
				unit.Px(1280),
				unit.Px(640),
			),
		)
		defer win.Close()

		for e := range win.Events() {
			switch e := e.(type) {
			case system.FrameEvent:
				ops := new(op.Ops)
				gtx := layout.NewContext(ops, e)
				layout.UniformInset(unit.Dp(20)).Layout(gtx, widget.Layout)
				e.Frame(ops)

			case key.Event:
				switch e.Name {
				case "Q", key.NameEscape:
					win.Close()
				}

			case system.DestroyEvent:
				os.Exit(0)
			}
		}
	}()

	app.Main()
	return nil
}
