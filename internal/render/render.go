// Package render draws a temperature series as a PNG line chart.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kjstillabower/tempplot/internal/models"
)

// Figure geometry: 10x6 inches at 100 DPI, i.e. 1000x600 pixels.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
	DPI    = 100

	Title  = "Temperature Over Time"
	XLabel = "Date"
	YLabel = "Temperature (°C)"
)

var (
	// ErrEmptySeries is returned when there is nothing to plot.
	ErrEmptySeries = errors.New("empty series")

	// ErrFigureClosed is returned when writing a figure after Close.
	ErrFigureClosed = errors.New("figure closed")

	// ErrPlot is returned when the series cannot be turned into plot elements.
	ErrPlot = errors.New("plot")
)

// seriesColor matches the common default first-series blue (#1f77b4).
var seriesColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// Figure is a drawn chart held in memory until written. Release it with Close.
type Figure struct {
	plot   *plot.Plot
	line   *plotter.Line
	canvas *vgimg.Canvas
}

// NewFigure plots series.Celsius against series.Dates as a line with circle markers
// and draws it onto a raster canvas. Points are connected in the order given.
func NewFigure(series models.TemperatureSeries) (*Figure, error) {
	if series.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if len(series.Celsius) != len(series.Dates) {
		return nil, fmt.Errorf("%w: %d dates but %d temperatures", ErrPlot, len(series.Dates), len(series.Celsius))
	}

	xys := make(plotter.XYs, series.Len())
	for i := range xys {
		xys[i].X = float64(series.Dates[i].Unix())
		xys[i].Y = series.Celsius[i]
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	p.X.Tick.Marker = dateTicks{}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlot, err)
	}
	line.Color = seriesColor
	line.Width = vg.Points(1.5)
	points.Shape = draw.CircleGlyph{}
	points.Color = seriesColor
	points.Radius = vg.Points(3)
	p.Add(line, points)

	// gonum sizes each axis from its tick labels, so rotated dates are never clipped.
	c := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	p.Draw(draw.New(c))

	return &Figure{plot: p, line: line, canvas: c}, nil
}

// WriteTo encodes the figure as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	if f == nil || f.canvas == nil {
		return 0, ErrFigureClosed
	}
	return vgimg.PngCanvas{Canvas: f.canvas}.WriteTo(w)
}

// Close releases the plot and its canvas. Safe to call more than once.
func (f *Figure) Close() error {
	if f == nil {
		return nil
	}
	f.plot = nil
	f.line = nil
	f.canvas = nil
	return nil
}
