package parse

import (
	"strconv"
	"strings"

	"github.com/tscircuit/gerberts/ast"
)

// parseCommand dispatches a star-terminated, non-extended command by
// prefix match against the recognized command table.
func parseCommand(value string) ast.Node {
	switch value {
	case "G01", "G1":
		return &ast.SetInterpolationMode{Mode: ast.Linear}
	case "G02", "G2":
		return &ast.SetInterpolationMode{Mode: ast.CircularCW}
	case "G03", "G3":
		return &ast.SetInterpolationMode{Mode: ast.CircularCCW}
	case "G74":
		return &ast.SetInterpolationMode{Mode: ast.SingleQuadrant}
	case "G75":
		return &ast.SetInterpolationMode{Mode: ast.MultiQuadrant}
	case "G36":
		return &ast.RegionStart{}
	case "G37":
		return &ast.RegionEnd{}
	case "M00", "M02", "M0":
		return &ast.EndOfFile{}
	}
	if strings.HasPrefix(value, "G04") {
		return &ast.Comment{Text: strings.TrimSpace(strings.TrimPrefix(value, "G04"))}
	}
	if op, ok := tryParseOperation(value); ok {
		return op
	}
	if sel, ok := tryParseSelectAperture(value); ok {
		return sel
	}
	return &ast.UnknownCommand{Raw: value + "*"}
}

// tryParseOperation recognizes an optional leading G01/G02/G03 mode
// change, followed by any combination of X/Y/I/J fields, followed by a
// terminal D01/D02/D03 (or its legacy single-digit form).
func tryParseOperation(value string) (*ast.Operation, bool) {
	rest := value
	var modeChange *ast.InterpolationMode
	switch {
	case strings.HasPrefix(rest, "G01"):
		m := ast.Linear
		modeChange, rest = &m, rest[3:]
	case strings.HasPrefix(rest, "G02"):
		m := ast.CircularCW
		modeChange, rest = &m, rest[3:]
	case strings.HasPrefix(rest, "G03"):
		m := ast.CircularCCW
		modeChange, rest = &m, rest[3:]
	}

	dcode, rest, ok := stripDCode(rest)
	if !ok {
		return nil, false
	}
	fields := scanAxisFields(rest)
	return &ast.Operation{
		DCode:      dcode,
		X:          fields.x,
		Y:          fields.y,
		I:          fields.i,
		J:          fields.j,
		ModeChange: modeChange,
	}, true
}

// stripDCode removes a terminal D01/D02/D03 (or D1/D2/D3) suffix,
// preferring the two-digit form so it isn't confused with a digit that
// belongs to a coordinate value.
func stripDCode(s string) (ast.DCode, string, bool) {
	switch {
	case strings.HasSuffix(s, "D01"):
		return ast.Interpolate, strings.TrimSuffix(s, "D01"), true
	case strings.HasSuffix(s, "D02"):
		return ast.Move, strings.TrimSuffix(s, "D02"), true
	case strings.HasSuffix(s, "D03"):
		return ast.Flash, strings.TrimSuffix(s, "D03"), true
	case strings.HasSuffix(s, "D1"):
		return ast.Interpolate, strings.TrimSuffix(s, "D1"), true
	case strings.HasSuffix(s, "D2"):
		return ast.Move, strings.TrimSuffix(s, "D2"), true
	case strings.HasSuffix(s, "D3"):
		return ast.Flash, strings.TrimSuffix(s, "D3"), true
	default:
		return 0, s, false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// tryParseSelectAperture recognizes "Dnn" (nn >= 10), optionally
// prefixed by the legacy "G54" select-aperture-block marker.
func tryParseSelectAperture(value string) (*ast.SelectAperture, bool) {
	v := strings.TrimPrefix(value, "G54")
	if !strings.HasPrefix(v, "D") {
		return nil, false
	}
	numStr := v[1:]
	if numStr == "" {
		return nil, false
	}
	for i := 0; i < len(numStr); i++ {
		if !isDigit(numStr[i]) {
			return nil, false
		}
	}
	n, err := strconv.Atoi(numStr)
	if err != nil || n < 10 {
		return nil, false
	}
	sel, err := ast.NewSelectAperture(n)
	if err != nil {
		return nil, false
	}
	return sel, true
}
