package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

func writeWave(p *plot.Plot, width, height vg.Length, output io.Writer, format string) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

// SaveWave renders the waveform to a file, with the format taken from the
// file extension (png, svg, or pdf).
func SaveWave(p *plot.Plot, width, height vg.Length, path string) (err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	switch format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if e := output.Close(); e != nil {
			err = multierror.Append(err, e).ErrorOrNil()
		}
	}()
	return writeWave(p, width, height, output, format)
}
