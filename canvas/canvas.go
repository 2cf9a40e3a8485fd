// Package canvas implements spec.md 6's plotting collaborator:
// draw_polygon, set_fill_colour, set_line_colour, set_bounding_box,
// write. It is the one place enclosure/paving Draw methods reach for
// an external rendering dependency, grounded on
// Additionnals/plot_pacs_sweep.go's go-echarts usage, repurposed from
// parameter-sweep scatter plots to reach-set polygon overlays.
package canvas

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Colour is an RGB triple in [0,255].
type Colour struct {
	R, G, B uint8
}

func (c Colour) hex() string {
	const hexDigits = "0123456789abcdef"
	b := [7]byte{'#'}
	put := func(i int, v uint8) {
		b[i] = hexDigits[v>>4]
		b[i+1] = hexDigits[v&0xf]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(b[:])
}

// Drawer is the abstract collaborator spec.md 6 names; EChartsCanvas is
// the one concrete implementation.
type Drawer interface {
	DrawPolygon(vertices [][2]float64)
	SetFillColour(c Colour)
	SetLineColour(c Colour)
	SetBoundingBox(xLo, xHi, yLo, yHi float64)
	Write(path string) error
}

type polygonSeries struct {
	vertices  [][2]float64
	fill      Colour
	line      Colour
	hasFill   bool
	hasLine   bool
}

// EChartsCanvas accumulates polygons drawn via DrawPolygon and renders
// them as a go-echarts Line chart (closed polylines approximate filled
// polygons well enough for reach-set overlays, and Line supports
// per-series styling the way the pack's scatter plots already do).
type EChartsCanvas struct {
	polys       []polygonSeries
	currentFill Colour
	currentLine Colour
	hasFill     bool
	hasLine     bool
	xLo, xHi    float64
	yLo, yHi    float64
	haveBounds  bool
	title       string
}

// NewEChartsCanvas returns an empty canvas titled for the given plot.
func NewEChartsCanvas(title string) *EChartsCanvas {
	return &EChartsCanvas{title: title}
}

var _ Drawer = (*EChartsCanvas)(nil)

func (c *EChartsCanvas) DrawPolygon(vertices [][2]float64) {
	closed := append(append([][2]float64(nil), vertices...), vertices[0])
	c.polys = append(c.polys, polygonSeries{
		vertices: closed,
		fill:     c.currentFill,
		line:     c.currentLine,
		hasFill:  c.hasFill,
		hasLine:  c.hasLine,
	})
}

func (c *EChartsCanvas) SetFillColour(col Colour) {
	c.currentFill = col
	c.hasFill = true
}

func (c *EChartsCanvas) SetLineColour(col Colour) {
	c.currentLine = col
	c.hasLine = true
}

func (c *EChartsCanvas) SetBoundingBox(xLo, xHi, yLo, yHi float64) {
	c.xLo, c.xHi, c.yLo, c.yHi = xLo, xHi, yLo, yHi
	c.haveBounds = true
}

// Write renders every accumulated polygon to an HTML file at path.
func (c *EChartsCanvas) Write(path string) error {
	line := charts.NewLine()
	titleOpts := opts.Title{Title: c.title}
	xAxis := opts.XAxis{Name: "x"}
	yAxis := opts.YAxis{Name: "y"}
	if c.haveBounds {
		xAxis.Min, xAxis.Max = c.xLo, c.xHi
		yAxis.Min, yAxis.Max = c.yLo, c.yHi
	}
	line.SetGlobalOptions(
		charts.WithTitleOpts(titleOpts),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	xs := make([]string, 0)
	for i, p := range c.polys {
		items := make([]opts.LineData, len(p.vertices))
		for j, v := range p.vertices {
			items[j] = opts.LineData{Value: []interface{}{v[0], v[1]}}
			xs = append(xs, "")
			_ = j
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		}
		if p.hasLine {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Color: p.line.hex()}))
		}
		if p.hasFill {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Color: p.fill.hex(), Opacity: 0.3}))
		}
		label := seriesName(i)
		line.AddSeries(label, items, seriesOpts...)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}

func seriesName(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return "poly-" + string(letters[i])
	}
	return "poly"
}
