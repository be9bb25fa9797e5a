package lib

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"
	gsvg "github.com/twpayne/go-svg"
	"github.com/twpayne/go-svg/svgpath"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// topoColors picks a site's fill color by role, for the topology map.
var topoColors = map[SiteType]string{
	POP: "#cc2222",
	DN:  "#2266cc",
	CN:  "#22aa44",
}

// TopologyCanvas draws an SVG map of a topology's selected sites and
// links, grounded on the teacher's SVGCanvas (buffered svgo writer,
// xlate'd coordinates, Dump-to-file), generalized from antenna-segment
// drawing to site/link drawing. If nothing has been selected yet
// (before phase 1 has run), it falls back to the full candidate graph
// so the map is still useful for sanity-checking input geometry.
type TopologyCanvas struct {
	buf    *bytes.Buffer
	svg    *svg.SVG
	box    *BoundingBox
	scale  float64
	margin int
	w, h   int
}

// NewTopologyCanvas lays out the canvas to fit every site in sites at
// the given pixel scale (pixels per degree of lon/lat).
func NewTopologyCanvas(sites []*Site, scale float64) *TopologyCanvas {
	box := NewBoundingBox()
	for _, s := range sites {
		box.Include(Vec2{s.Lon, s.Lat})
	}
	const margin = 24
	w := int((box.Xmax-box.Xmin)*scale) + 2*margin
	h := int((box.Ymax-box.Ymin)*scale) + 2*margin
	if w < 2*margin+1 {
		w = 2*margin + 1
	}
	if h < 2*margin+1 {
		h = 2*margin + 1
	}
	buf := new(bytes.Buffer)
	return &TopologyCanvas{buf: buf, svg: svg.New(buf), box: box, scale: scale, margin: margin, w: w, h: h}
}

func (c *TopologyCanvas) xlate(s *Site) (int, int) {
	x := int((s.Lon-c.box.Xmin)*c.scale) + c.margin
	y := c.h - (int((s.Lat-c.box.Ymin)*c.scale) + c.margin)
	return x, y
}

// Draw renders sites and links onto the canvas. Backhaul links are
// drawn solid, access links dashed; site radius and color follow role.
func (c *TopologyCanvas) Draw(t *Topology) {
	c.svg.Start(c.w, c.h)
	links := t.SelectedLinks()
	if len(links) == 0 {
		links = t.Graph.Links()
	}
	sites := t.SelectedSites()
	if len(sites) == 0 {
		sites = t.Graph.Sites()
	}
	for _, l := range SortLinks(links) {
		from, ok1 := t.Graph.Site(l.From)
		to, ok2 := t.Graph.Site(l.To)
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := c.xlate(from)
		x2, y2 := c.xlate(to)
		if l.Backhaul {
			c.svg.Line(x1, y1, x2, y2, "stroke:#2266cc;stroke-width:2")
		} else {
			c.svg.Line(x1, y1, x2, y2, "stroke:#999999;stroke-width:1;stroke-dasharray:4,2")
		}
	}
	for _, s := range SortSites(sites) {
		x, y := c.xlate(s)
		r := 4
		fill := "#cccccc"
		if clr, ok := topoColors[s.Type]; ok {
			fill = clr
		}
		if s.Type == POP {
			r = 7
		} else if s.Type == DN {
			r = 5
		}
		c.svg.Circle(x, y, r, fmt.Sprintf("fill:%s;stroke:black;stroke-width:1", fill))
		c.svg.Text(x, y-r-3, s.ID.Short(), "text-anchor:middle;font-size:9px")
	}
	c.svg.End()
}

// Dump writes the buffered SVG stream to fName.
func (c *TopologyCanvas) Dump(fName string) error {
	f, err := os.Create(fName)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(c.buf.Bytes())
	return err
}

// RenderTopology is the convenience entry point: build a canvas sized
// to t's sites, draw it, and write the result to w.
func RenderTopology(w io.Writer, t *Topology) error {
	sites := t.SelectedSites()
	if len(sites) == 0 {
		sites = t.Graph.Sites()
	}
	const pixelsPerDegree = 50000.0
	c := NewTopologyCanvas(sites, pixelsPerDegree)
	c.Draw(t)
	_, err := w.Write(c.buf.Bytes())
	return err
}

// terrainSample is one DSM height reading along a link's horizontal
// projection, at its distance from the near endpoint.
type terrainSample struct {
	alongM, heightM float64
}

// RenderLOSProfile plots a link's terrain profile against its
// straight line-of-sight chord and Fresnel-tube bound, the diagnostic
// picture behind a Validate decision (spec.md 4.2). Grounded on the
// teacher's plotGraph/plotXY (plot.New, plotter.NewLine, p.Add,
// p.Legend.Add, p.WriterTo), generalized from antenna-impedance
// sweeps to terrain-vs-clearance profiles.
func RenderLOSProfile(w io.Writer, raster *Raster, a, b Vec3, radius float64, format string) error {
	total := b.XY().Sub(a.XY()).Length()

	var samples []terrainSample
	for cell := range raster.CellsNear(a, b, radius) {
		along := cell.Center.Sub(a.XY()).Dot(b.XY().Sub(a.XY())) / total
		samples = append(samples, terrainSample{alongM: along, heightM: cell.Height})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].alongM < samples[j].alongM })

	p := plot.New()
	p.Title.Text = "LOS elevation profile"
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "height (m)"

	terrain := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		terrain = append(terrain, plotter.XY{X: s.alongM, Y: s.heightM})
	}
	terrainLine, err := plotter.NewLine(terrain)
	if err != nil {
		return err
	}
	terrainLine.Color = color.RGBA{R: 120, G: 80, B: 40, A: 255}
	p.Add(terrainLine)
	p.Legend.Add("terrain", terrainLine)

	sight := plotter.XYs{
		{X: 0, Y: a[2]},
		{X: total, Y: b[2]},
	}
	sightLine, err := plotter.NewLine(sight)
	if err != nil {
		return err
	}
	sightLine.Color = color.RGBA{B: 200, A: 255}
	p.Add(sightLine)
	p.Legend.Add("line of sight", sightLine)

	if radius > 0 {
		upper := make(plotter.XYs, len(sight))
		lower := make(plotter.XYs, len(sight))
		for i, pt := range sight {
			upper[i] = plotter.XY{X: pt.X, Y: pt.Y + radius}
			lower[i] = plotter.XY{X: pt.X, Y: pt.Y - radius}
		}
		upperLine, err := plotter.NewLine(upper)
		if err != nil {
			return err
		}
		upperLine.Color = color.RGBA{R: 200, A: 255}
		upperLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(upperLine)
		p.Legend.Add("Fresnel bound", upperLine)

		lowerLine, err := plotter.NewLine(lower)
		if err != nil {
			return err
		}
		lowerLine.Color = color.RGBA{R: 200, A: 255}
		lowerLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(lowerLine)
	}

	wrt, err := p.WriterTo(18*vg.Centimeter, 10*vg.Centimeter, format)
	if err != nil {
		return err
	}
	_, err = wrt.WriteTo(w)
	return err
}

// RenderSitePlan exports the boundary polygon, building footprints and
// site markers as a scaled millimeter vector drawing, grounded on the
// teacher's cmd/convert svg.go (svg.New/svg.Path/svg.Circle builder
// chain, ViewBox sized to a BoundingBox, WriteToIndent), generalized
// from dipole-leg-plus-hole-marker export to boundary-plus-footprint
// export. Unlike RenderTopology's role-colored pixel canvas, this is
// meant for feeding the plan into CAD/GIS tooling that wants a vector
// format rather than a pixel image. mmPerUnit scales the input
// coordinates (the same lon/lat-degree space RenderTopology draws in)
// to millimeters.
func RenderSitePlan(w io.Writer, boundary Polygon, buildings []*Building, sites []*Site, mmPerUnit float64) error {
	bb := NewBoundingBox()
	for _, v := range boundary {
		bb.Include(v)
	}
	for _, b := range buildings {
		for _, v := range b.Outline {
			bb.Include(v)
		}
	}
	for _, s := range sites {
		bb.Include(Vec2{s.Lon, s.Lat})
	}

	scale := func(v Vec2) []float64 {
		return []float64{mmPerUnit * v[0], mmPerUnit * v[1]}
	}
	ring := func(outline []Vec2) *svgpath.Path {
		path := svgpath.New()
		if len(outline) == 0 {
			return path
		}
		p0 := scale(outline[0])
		path.MoveToAbs(p0)
		for _, v := range outline[1:] {
			path.LineToAbs(scale(v))
		}
		path.LineToAbs(p0)
		return path
	}

	graph := gsvg.New()
	w0, h0 := mmPerUnit*(bb.Xmax-bb.Xmin), mmPerUnit*(bb.Ymax-bb.Ymin)
	graph.WidthHeight(w0, h0, gsvg.MM)
	graph.ViewBox(mmPerUnit*bb.Xmin, mmPerUnit*bb.Ymin, w0, h0)
	graph.AppendChildren(gsvg.Title(gsvg.CharData("site plan")))

	if len(boundary) > 0 {
		style := gsvg.String("stroke:#000000;stroke-opacity:1;stroke-width:20;stroke-dasharray:none")
		graph.AppendChildren(gsvg.Path().Style(style).Fill("none").D(ring(boundary)))
	}
	for _, b := range buildings {
		style := gsvg.String("stroke:#555555;stroke-opacity:1;stroke-width:10;stroke-dasharray:none")
		graph.AppendChildren(gsvg.Path().Style(style).Fill("#cccccc33").D(ring(b.Outline)))
	}
	for _, s := range sites {
		p := scale(Vec2{s.Lon, s.Lat})
		fill := "none"
		if clr, ok := topoColors[s.Type]; ok {
			fill = clr
		}
		graph.AppendChildren(gsvg.Circle().CXCYR(p[0], p[1], 150, gsvg.MM).Fill(fill).Stroke("black"))
	}

	buf := new(bytes.Buffer)
	if _, err := graph.WriteToIndent(buf, "", "  "); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
