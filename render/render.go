// Package render turns a parsed Gerber document into an SVG drawing by
// replaying its graphics state in a single forward pass. Coordinates
// are tracked with mgl64.Vec2, and region outlines are accumulated and
// self-normalized with polyclip-go before they are emitted as an SVG
// path.
package render

import (
	"fmt"
	"strings"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tscircuit/gerberts/ast"
	"github.com/tscircuit/gerberts/document"
)

// Options controls SVG emission. The zero value is not usable; call
// DefaultOptions to obtain sensible defaults, then override as needed.
type Options struct {
	Scale           float64
	StrokeColor     string
	FillColor       string
	BackgroundColor string
	Padding         float64
	// Logf, if set, receives one line per diagnostic event (an aperture
	// selected before its definition, a flash with no resolvable
	// aperture, degenerate region sub-contours dropped), without forcing a logging
	// dependency on callers who don't want one.
	Logf func(format string, args ...any)
}

// DefaultOptions returns the renderer's baseline appearance.
func DefaultOptions() Options {
	return Options{
		Scale:           1,
		StrokeColor:     "#000000",
		FillColor:       "#000000",
		BackgroundColor: "none",
		Padding:         0.1,
	}
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

type boundingBox struct {
	min, max mgl64.Vec2
	touched  bool
}

func (b *boundingBox) extend(p mgl64.Vec2) {
	if !b.touched {
		b.min, b.max, b.touched = p, p, true
		return
	}
	if p.X() < b.min.X() {
		b.min[0] = p.X()
	}
	if p.Y() < b.min.Y() {
		b.min[1] = p.Y()
	}
	if p.X() > b.max.X() {
		b.max[0] = p.X()
	}
	if p.Y() > b.max.Y() {
		b.max[1] = p.Y()
	}
}

type element struct {
	svg string
}

// renderer accumulates SVG body elements and a bounding box while
// replaying a document's node sequence.
type renderer struct {
	opts      Options
	state     *graphicsState
	apertures map[int]resolvedAperture
	elements  []element
	box       boundingBox
	// regionContours holds the sub-contours closed by an interior D02
	// since the last RegionStart; currentContour is the one still being
	// traced. Both are unioned together at RegionEnd so a region with a
	// hole (an outer boundary plus an inner island) resolves as one
	// evenodd path instead of two independently filled shapes.
	regionContours polyclip.Polygon
	currentContour []polyclip.Point
	inRegion       bool
}

// Render replays doc's node sequence and returns a complete SVG
// document string.
func Render(doc *document.Document, opts Options) (string, error) {
	r := &renderer{
		opts:      opts,
		state:     newGraphicsState(),
		apertures: make(map[int]resolvedAperture),
	}
	for _, n := range doc.Nodes() {
		if err := r.apply(n); err != nil {
			return "", err
		}
	}
	return r.finish(), nil
}

func (r *renderer) apply(n ast.Node) error {
	switch v := n.(type) {
	case *ast.FormatSpecification:
		r.state.format = v
	case *ast.UnitMode:
		r.state.unit = v.Unit
	case *ast.ApertureDefinition:
		r.apertures[v.Code] = resolveAperture(v)
	case *ast.SelectAperture:
		if _, ok := r.apertures[v.Code]; !ok {
			r.opts.logf("render: aperture D%d selected before definition", v.Code)
		}
		r.state.currentAperture = v.Code
	case *ast.SetInterpolationMode:
		r.state.interpolation = v.Mode
	case *ast.LoadPolarity:
		r.state.trans.Polarity = v.Polarity
	case *ast.LoadMirroring:
		r.state.trans.Mirroring = v.Mirroring
	case *ast.LoadRotation:
		r.state.trans.Rotation = v.Degrees
	case *ast.LoadScaling:
		r.state.trans.Scale = v.Factor
	case *ast.RegionStart:
		r.inRegion = true
		r.regionContours = nil
		r.currentContour = nil
	case *ast.RegionEnd:
		r.closeRegion()
	case *ast.Operation:
		if v.ModeChange != nil {
			r.state.interpolation = *v.ModeChange
		}
		r.applyOperation(v)
	}
	return nil
}

func (r *renderer) applyOperation(op *ast.Operation) {
	x, xok := r.state.decode(op.X)
	y, yok := r.state.decode(op.Y)
	if !xok {
		x = r.state.x
	}
	if !yok {
		y = r.state.y
	}
	prev := mgl64.Vec2{r.state.x, r.state.y}
	cur := mgl64.Vec2{x, y}
	r.box.extend(cur)

	switch op.DCode {
	case ast.Move:
		// A move inside a region starts a new sub-contour (an inner
		// island cutout, most commonly) without ending the region: the
		// contour traced so far is closed off and accumulated, and
		// tracing resumes from this point.
		if r.inRegion && len(r.currentContour) > 0 {
			r.regionContours = append(r.regionContours, polyclip.Contour(r.currentContour))
			r.currentContour = nil
		}
	case ast.Interpolate:
		if r.inRegion {
			if len(r.currentContour) == 0 && r.state.haveCurrent {
				r.currentContour = append(r.currentContour, polyclip.Point{X: prev.X(), Y: prev.Y()})
			}
			r.currentContour = append(r.currentContour, polyclip.Point{X: cur.X(), Y: cur.Y()})
		} else if r.state.haveCurrent {
			r.drawStroke(prev, cur)
		}
	case ast.Flash:
		r.drawFlash(cur)
	}

	r.state.x, r.state.y = x, y
	r.state.haveCurrent = true
}

func (r *renderer) currentAperture() (resolvedAperture, bool) {
	ra, ok := r.apertures[r.state.currentAperture]
	return ra, ok
}

func (r *renderer) drawStroke(from, to mgl64.Vec2) {
	width := 0.1
	if ra, ok := r.currentAperture(); ok {
		if w := ra.strokeWidth(); w > 0 {
			width = w
		}
	}
	r.box.extend(from)
	r.box.extend(to)
	r.elements = append(r.elements, element{svg: fmt.Sprintf(
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`,
		fnum(from.X()), fnum(from.Y()), fnum(to.X()), fnum(to.Y()), r.opts.StrokeColor, fnum(width))})
}

func (r *renderer) drawFlash(at mgl64.Vec2) {
	ra, ok := r.currentAperture()
	if !ok {
		r.opts.logf("render: flash with no resolvable aperture at (%v, %v)", at.X(), at.Y())
		ra = resolvedAperture{template: "C", diameter: 0.1}
	}
	switch ra.template {
	case "R":
		r.box.extend(mgl64.Vec2{at.X() - ra.xSize/2, at.Y() - ra.ySize/2})
		r.box.extend(mgl64.Vec2{at.X() + ra.xSize/2, at.Y() + ra.ySize/2})
		r.elements = append(r.elements, element{svg: fmt.Sprintf(
			`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
			fnum(at.X()-ra.xSize/2), fnum(at.Y()-ra.ySize/2), fnum(ra.xSize), fnum(ra.ySize), r.opts.FillColor)})
	case "O":
		radius := ra.cornerRadius()
		r.box.extend(mgl64.Vec2{at.X() - ra.xSize/2, at.Y() - ra.ySize/2})
		r.box.extend(mgl64.Vec2{at.X() + ra.xSize/2, at.Y() + ra.ySize/2})
		r.elements = append(r.elements, element{svg: fmt.Sprintf(
			`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s"/>`,
			fnum(at.X()-ra.xSize/2), fnum(at.Y()-ra.ySize/2), fnum(ra.xSize), fnum(ra.ySize),
			fnum(radius), fnum(radius), r.opts.FillColor)})
	default:
		radius := ra.diameter / 2
		r.box.extend(mgl64.Vec2{at.X() - radius, at.Y() - radius})
		r.box.extend(mgl64.Vec2{at.X() + radius, at.Y() + radius})
		r.elements = append(r.elements, element{svg: fmt.Sprintf(
			`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			fnum(at.X()), fnum(at.Y()), fnum(radius), r.opts.FillColor)})
	}
}

// closeRegion self-normalizes all of the region's sub-contours together
// with a single self-union (Construct against an empty polygon) before
// emitting the result as one evenodd path, so an outer boundary plus an
// inner island sub-contour cancel into a hole rather than rendering as
// two independently filled shapes.
func (r *renderer) closeRegion() {
	defer func() { r.inRegion, r.regionContours, r.currentContour = false, nil, nil }()
	if len(r.currentContour) > 0 {
		r.regionContours = append(r.regionContours, polyclip.Contour(r.currentContour))
	}
	var subj polyclip.Polygon
	dropped := 0
	for _, c := range r.regionContours {
		if len(c) < 3 {
			dropped++
			continue
		}
		subj = append(subj, c)
	}
	if dropped > 0 {
		r.opts.logf("render: dropping %d degenerate sub-contour(s)", dropped)
	}
	if len(subj) == 0 {
		return
	}
	normalized := subj.Construct(polyclip.UNION, polyclip.Polygon{})

	var b strings.Builder
	for _, c := range normalized {
		if len(c) == 0 {
			continue
		}
		fmt.Fprintf(&b, "M %s %s ", fnum(c[0].X), fnum(c[0].Y))
		for _, p := range c[1:] {
			fmt.Fprintf(&b, "L %s %s ", fnum(p.X), fnum(p.Y))
		}
		b.WriteString("Z ")
	}
	if b.Len() == 0 {
		return
	}
	r.elements = append(r.elements, element{svg: fmt.Sprintf(
		`<path d="%s" fill="%s" fill-rule="evenodd"/>`, strings.TrimSpace(b.String()), r.opts.FillColor)})
}

func (r *renderer) finish() string {
	minX, minY, w, h := 0.0, 0.0, 1.0, 1.0
	if r.box.touched {
		minX = r.box.min.X() - r.opts.Padding
		minY = r.box.min.Y() - r.opts.Padding
		w = r.box.max.X() - r.box.min.X() + 2*r.opts.Padding
		h = r.box.max.Y() - r.box.min.Y() + 2*r.opts.Padding
	}
	scale := r.opts.Scale
	if scale == 0 {
		scale = 1
	}
	var body strings.Builder
	for _, e := range r.elements {
		body.WriteString(e.svg)
		body.WriteByte('\n')
	}
	// Gerber coordinates are +Y-up; SVG is +Y-down. Flipping the whole
	// drawing group (rather than negating every emitted Y coordinate)
	// keeps the element-drawing code working in Gerber's own space.
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s"><rect x="0" y="0" width="%s" height="%s" fill="%s"/><g transform="translate(0, %s) scale(1, -1) translate(%s, %s)">%s</g></svg>`,
		fnum(w), fnum(h),
		fnum(w*scale), fnum(h*scale),
		fnum(w), fnum(h), r.opts.BackgroundColor,
		fnum(h), fnum(-minX), fnum(-minY),
		body.String())
}

func fnum(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
