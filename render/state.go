package render

import "github.com/tscircuit/gerberts/ast"

// apTransParameters holds the modal transform loaded by LP/LM/LR/LS,
// kept until changed. The renderer records it but does not apply it to
// any drawn flash, trace or region.
type apTransParameters struct {
	Polarity  ast.Polarity
	Mirroring ast.Mirroring
	Rotation  float64
	Scale     float64
}

func newApTransParameters() apTransParameters {
	return apTransParameters{Polarity: ast.Dark, Mirroring: ast.MirrorNone, Rotation: 0, Scale: 1}
}

// graphicsState is the full modal state replayed across a node stream:
// current point, selected aperture, interpolation mode, and the active
// LP/LM/LR/LS transform.
type graphicsState struct {
	format          *ast.FormatSpecification
	unit            ast.Unit
	interpolation   ast.InterpolationMode
	currentAperture int
	x, y            float64
	haveCurrent     bool
	trans           apTransParameters
}

func newGraphicsState() *graphicsState {
	return &graphicsState{
		unit:          ast.Inches,
		interpolation: ast.Linear,
		trans:         newApTransParameters(),
	}
}

// decode converts a fixed-point integer coordinate field to a real
// number using the format specification's decimal-digit count. The X
// axis's decimal-digit count is used for both axes: real Gerber
// generators always emit matching X and Y digit counts, and DESIGN.md
// records this as a deliberate, documented simplification rather than
// a silent guess.
func (g *graphicsState) decode(field *int64) (float64, bool) {
	if field == nil || g.format == nil {
		return 0, false
	}
	divisor := 1.0
	for i := 0; i < g.format.XDec; i++ {
		divisor *= 10
	}
	return float64(*field) / divisor, true
}
