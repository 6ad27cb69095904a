package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/lamim/tour-cost-report/internal/costs"
)

// Titles and axis labels of the two chart kinds.
const (
	AggregateTitle  = "Comparison of Nearest Neighbor, Greedy, and Cheapest Insertion"
	AggregateXLabel = "Filename"
	AggregateYLabel = "Costs (log scale)"
	InstanceTitle   = "Comparison of Algorithms for File: %s"
	InstanceXLabel  = "Heuristics"
	InstanceYLabel  = "Costs"
)

// ConstructiveLabels name the three constructive heuristics. They also label the
// instance chart positions, since local-search round k starts from constructive k.
var ConstructiveLabels = []string{"Nearest Neighbor", "Greedy", "Cheapest"}

// plot area estimate used to turn a bar fraction into an absolute width
const axisMargin = vg.Inch

// Series is one colored set of bars.
type Series struct {
	Label  string
	Key    string
	Values plotter.Values
	// XMin is the x position of the first bar, in category units.
	XMin float64
}

// AggregateSeries lays out the constructive costs of every record: one category per
// record in order, three bars per category.
func AggregateSeries(records []costs.Record, fraction float64) (labels []string, series []Series) {
	labels = make([]string, len(records))
	nn := make(plotter.Values, len(records))
	gr := make(plotter.Values, len(records))
	ch := make(plotter.Values, len(records))
	for i, r := range records {
		labels[i] = r.Filename
		nn[i] = r.NearestNeighbor
		gr[i] = r.Greedy
		ch[i] = r.CheapestInsertion
	}
	series = []Series{
		{Label: "Nearest Neighbor", Key: SeriesNearestNeighbor, Values: nn},
		{Label: "Greedy", Key: SeriesGreedy, Values: gr},
		{Label: "Cheapest", Key: SeriesCheapest, Values: ch},
	}
	center(series, fraction)
	return labels, series
}

// InstanceSeries lays out one record: three positions, four bars per position.
func InstanceSeries(r costs.Record, fraction float64) []Series {
	c := r.Constructive()
	series := []Series{
		{Label: "Constructive Heuristics", Key: SeriesConstructive, Values: c[:]},
		{Label: "2opt Heuristic", Key: SeriesTwoOpt, Values: r.TwoOpt[:]},
		{Label: "NodeShift Heuristic", Key: SeriesNodeShift, Values: r.NodeShift[:]},
		{Label: "NodeSwap Heuristic", Key: SeriesNodeSwap, Values: r.NodeSwap[:]},
	}
	center(series, fraction)
	return series
}

// center offsets the series so each group is centered on its category.
func center(series []Series, fraction float64) {
	mid := float64(len(series)-1) / 2
	for i := range series {
		series[i].XMin = (float64(i) - mid) * fraction
	}
}

// AggregatePlot builds the constructive comparison across all records.
func (r *Renderer) AggregatePlot(records []costs.Record) (*plot.Plot, error) {
	s := r.style
	labels, series := AggregateSeries(records, s.AggregateBarFraction)

	p := r.newPlot(AggregateTitle, AggregateXLabel, AggregateYLabel)
	width := barWidth(s.AggregateWidth, len(labels), s.AggregateBarFraction)
	if err := r.addSeries(p, series, width); err != nil {
		return nil, err
	}

	p.Y.Scale = LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Min, p.Y.Max = logRange(series)

	setCategories(p, labels)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// InstancePlot builds the per-instance comparison of all heuristics.
func (r *Renderer) InstancePlot(rec costs.Record) (*plot.Plot, error) {
	s := r.style
	series := InstanceSeries(rec, s.InstanceBarFraction)

	p := r.newPlot(fmt.Sprintf(InstanceTitle, rec.Filename), InstanceXLabel, InstanceYLabel)
	width := barWidth(s.InstanceWidth, len(ConstructiveLabels), s.InstanceBarFraction)
	if err := r.addSeries(p, series, width); err != nil {
		return nil, err
	}

	setCategories(p, ConstructiveLabels)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func (r *Renderer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	s := r.style
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = s.LabelSize
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = s.LabelSize
	p.X.Tick.Label.Font.Size = s.TickSize
	p.Y.Tick.Label.Font.Size = s.TickSize
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = s.TickSize

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{Y: 220}
	p.Add(grid)
	return p
}

func (r *Renderer) addSeries(p *plot.Plot, series []Series, width vg.Length) error {
	for _, sr := range series {
		c := r.style.color(sr.Key)
		if len(sr.Values) > 0 {
			bars, err := plotter.NewBarChart(sr.Values, width)
			if err != nil {
				return fmt.Errorf("failed to create %s bars: %w", sr.Label, err)
			}
			bars.Color = c
			bars.LineStyle.Width = 0
			bars.XMin = sr.XMin
			p.Add(bars)
		}
		p.Legend.Add(sr.Label, swatch{color: c})
	}
	return nil
}

// setCategories labels integer x positions and pins the x range around them.
func setCategories(p *plot.Plot, labels []string) {
	if len(labels) > 0 {
		p.NominalX(labels...)
	} else {
		p.X.Tick.Marker = plot.ConstantTicks{}
	}
	p.X.Min = -0.5
	p.X.Max = math.Max(float64(len(labels))-0.5, 0.5)
}

// barWidth converts a width in category units into an absolute bar width.
func barWidth(figure vg.Length, categories int, fraction float64) vg.Length {
	if categories < 1 {
		categories = 1
	}
	area := figure - axisMargin
	if area <= 0 {
		area = figure
	}
	w := area * vg.Length(fraction) / vg.Length(categories)
	if w < vg.Points(0.5) {
		w = vg.Points(0.5)
	}
	return w
}

// logRange picks decade-aligned axis bounds covering every positive value.
func logRange(series []Series) (lo, hi float64) {
	minPos, maxPos := math.Inf(1), 0.0
	for _, sr := range series {
		for _, v := range sr.Values {
			if v > 0 {
				minPos = math.Min(minPos, v)
				maxPos = math.Max(maxPos, v)
			}
		}
	}
	if math.IsInf(minPos, 1) {
		return 1, 10
	}
	lo = math.Pow(10, math.Floor(math.Log10(minPos*0.9)))
	hi = maxPos * 1.1
	if hi <= lo {
		hi = lo * 10
	}
	return lo, hi
}

// swatch is a legend entry that does not depend on the series having data.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}
