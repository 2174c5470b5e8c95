package render

import "github.com/tscircuit/gerberts/ast"

// resolvedAperture is the geometry a flash draws, decoded from an
// ast.ApertureDefinition's template letter and parameter list.
type resolvedAperture struct {
	template     string
	diameter     float64
	xSize, ySize float64
	holeDiameter float64
	vertices     int
}

// resolveAperture reads an ApertureDefinition's Params by template,
// mirroring the parameter order fixed by the Gerber standard for each
// of the four built-in shapes. A macro-templated aperture (any
// template name other than C/R/O/P) resolves to a small circle
// stand-in, since macro body geometry is never evaluated.
func resolveAperture(ad *ast.ApertureDefinition) resolvedAperture {
	ra := resolvedAperture{template: ad.Template}
	p := ad.Params
	switch ad.Template {
	case "C":
		if len(p) > 0 {
			ra.diameter = p[0]
		}
		if len(p) > 1 {
			ra.holeDiameter = p[1]
		}
	case "R":
		if len(p) > 0 {
			ra.xSize = p[0]
		}
		if len(p) > 1 {
			ra.ySize = p[1]
		} else {
			ra.ySize = ra.xSize
		}
		if len(p) > 2 {
			ra.holeDiameter = p[2]
		}
	case "O":
		if len(p) > 0 {
			ra.xSize = p[0]
		}
		if len(p) > 1 {
			ra.ySize = p[1]
		} else {
			ra.ySize = ra.xSize
		}
		if len(p) > 2 {
			ra.holeDiameter = p[2]
		}
	case "P":
		if len(p) > 0 {
			ra.diameter = p[0]
		}
		if len(p) > 1 {
			ra.vertices = int(p[1])
		}
		if len(p) > 2 {
			ra.holeDiameter = p[2]
		}
	default:
		ra.diameter = 0.1
	}
	return ra
}

// cornerRadius is the obround's rounding radius: half of its shorter
// side, same as the rounded end of a stadium shape.
func (ra resolvedAperture) cornerRadius() float64 {
	if ra.xSize < ra.ySize {
		return ra.xSize / 2
	}
	return ra.ySize / 2
}

// strokeWidth is the line width a trace of this aperture draws: its
// diameter for a circle, the smaller of its two sizes otherwise. This
// heuristic is recorded as an open decision in DESIGN.md.
func (ra resolvedAperture) strokeWidth() float64 {
	switch ra.template {
	case "C":
		return ra.diameter
	case "R", "O":
		if ra.xSize < ra.ySize {
			return ra.xSize
		}
		return ra.ySize
	default:
		return ra.diameter
	}
}
