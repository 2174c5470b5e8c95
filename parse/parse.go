// Package parse turns a token.Token stream into an ordered []ast.Node.
// It is a straight dispatch on a short prefix of each token's value: no
// lookahead across tokens, no backtracking. Anything it doesn't
// recognize becomes an ast.UnknownCommand so the original bytes survive
// a round trip.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tscircuit/gerberts/ast"
	"github.com/tscircuit/gerberts/token"
)

// Parse tokenizes and parses a complete Gerber source, producing one
// node per recognized token in the order the tokens appeared.
func Parse(source string) []ast.Node {
	toks := token.Scan(source)
	nodes := make([]ast.Node, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		nodes = append(nodes, dispatch(tok))
	}
	return nodes
}

// One parses source and requires it to resolve to exactly one node;
// this is the sole fallible entry point in this package.
func One(source string) (ast.Node, error) {
	nodes := Parse(source)
	if len(nodes) != 1 {
		return nil, fmt.Errorf("gerberts/parse: expected exactly one command, got %d", len(nodes))
	}
	return nodes[0], nil
}

func dispatch(tok token.Token) ast.Node {
	if !tok.Terminated {
		return unknownFromToken(tok)
	}
	if tok.Kind == token.ExtendedBlock {
		return parseExtended(tok.Value)
	}
	return parseCommand(tok.Value)
}

func unknownFromToken(tok token.Token) ast.Node {
	if tok.Kind == token.ExtendedBlock {
		return &ast.UnknownCommand{Raw: "%" + tok.Value}
	}
	return &ast.UnknownCommand{Raw: tok.Value}
}

// ---------------------------------------------------------------------
// Extended blocks
// ---------------------------------------------------------------------

func parseExtended(value string) ast.Node {
	inner := strings.TrimSuffix(value, "*")
	raw := "%" + value + "%"

	switch {
	case strings.HasPrefix(inner, "FS"):
		return parseFormatSpecification(inner, raw)
	case strings.HasPrefix(inner, "MO"):
		return parseUnitMode(inner, raw)
	case strings.HasPrefix(inner, "AD"):
		return parseApertureDefinition(inner, raw)
	case strings.HasPrefix(inner, "AM"):
		return parseApertureMacro(inner)
	case strings.HasPrefix(inner, "LP"):
		return parseLoadPolarity(inner, raw)
	case strings.HasPrefix(inner, "LM"):
		return parseLoadMirroring(inner, raw)
	case strings.HasPrefix(inner, "LR"):
		return parseLoadRotation(inner, raw)
	case strings.HasPrefix(inner, "LS"):
		return parseLoadScaling(inner, raw)
	case strings.HasPrefix(inner, "SR"):
		return parseStepRepeat(inner, raw)
	case strings.HasPrefix(inner, "TF."):
		name, values := splitAttribute(inner, "TF.")
		return ast.NewFileAttribute(name, values)
	case strings.HasPrefix(inner, "TA."):
		name, values := splitAttribute(inner, "TA.")
		return ast.NewApertureAttribute(name, values)
	case strings.HasPrefix(inner, "TO."):
		name, values := splitAttribute(inner, "TO.")
		return ast.NewObjectAttribute(name, values)
	case strings.HasPrefix(inner, "TD"):
		return parseDeleteAttribute(inner)
	case strings.HasPrefix(inner, "IP"):
		return &ast.SetImagePolarity{Value: strings.TrimPrefix(inner, "IP")}
	case strings.HasPrefix(inner, "OF"):
		return &ast.SetOffset{Value: strings.TrimPrefix(inner, "OF")}
	default:
		return &ast.UnknownCommand{Raw: raw}
	}
}

func parseFormatSpecification(inner, raw string) ast.Node {
	if len(inner) < 4 {
		return &ast.UnknownCommand{Raw: raw}
	}
	zeroChar := inner[2]
	modeChar := inner[3]
	xPos := strings.IndexByte(inner, 'X')
	yPos := strings.LastIndexByte(inner, 'Y')
	if xPos == -1 || yPos == -1 || xPos+3 > len(inner) || yPos+3 > len(inner) || xPos >= yPos {
		return &ast.UnknownCommand{Raw: raw}
	}
	xi, err1 := strconv.Atoi(inner[xPos+1 : xPos+2])
	xd, err2 := strconv.Atoi(inner[xPos+2 : xPos+3])
	yi, err3 := strconv.Atoi(inner[yPos+1 : yPos+2])
	yd, err4 := strconv.Atoi(inner[yPos+2 : yPos+3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return &ast.UnknownCommand{Raw: raw}
	}
	fs := &ast.FormatSpecification{XInt: xi, XDec: xd, YInt: yi, YDec: yd}
	switch zeroChar {
	case 'L':
		fs.ZeroOmission = ast.Leading
	case 'T':
		fs.ZeroOmission = ast.Trailing
	default:
		fs.ZeroOmission = ast.Leading
	}
	switch modeChar {
	case 'A':
		fs.CoordMode = ast.Absolute
	case 'I':
		fs.CoordMode = ast.Incremental
	default:
		fs.CoordMode = ast.Absolute
	}
	return fs
}

func parseUnitMode(inner, raw string) ast.Node {
	rem := strings.TrimPrefix(inner, "MO")
	switch rem {
	case "MM":
		return &ast.UnitMode{Unit: ast.Millimetres}
	case "IN":
		return &ast.UnitMode{Unit: ast.Inches}
	default:
		return &ast.UnknownCommand{Raw: raw}
	}
}

// parseApertureDefinition implements the "%ADD<code><template>[,<params>]"
// pattern. A malformed body still yields an ApertureDefinition with
// default fields (code=10, template="C") rather than an UnknownCommand.
func parseApertureDefinition(inner, raw string) ast.Node {
	rem := strings.TrimPrefix(inner, "AD")
	rem = strings.TrimPrefix(rem, "D")

	i := 0
	for i < len(rem) && rem[i] >= '0' && rem[i] <= '9' {
		i++
	}
	ad := &ast.ApertureDefinition{Code: 10, Template: "C"}
	if i == 0 {
		return ad
	}
	code, err := strconv.Atoi(rem[:i])
	if err != nil {
		return ad
	}
	ad.Code = code

	rest := rem[i:]
	commaIdx := strings.IndexByte(rest, ',')
	var template, paramsStr string
	if commaIdx == -1 {
		template = rest
	} else {
		template = rest[:commaIdx]
		paramsStr = rest[commaIdx+1:]
	}
	if template == "" {
		template = "C"
	}
	ad.Template = template

	if paramsStr != "" {
		for _, p := range strings.Split(paramsStr, "X") {
			p = strings.TrimSpace(p)
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				v = 0
			}
			ad.Params = append(ad.Params, v)
		}
	}
	return ad
}

func parseApertureMacro(inner string) ast.Node {
	rem := strings.TrimPrefix(inner, "AM")
	starIdx := strings.IndexByte(rem, '*')
	if starIdx == -1 {
		return &ast.ApertureMacro{Name: rem}
	}
	return &ast.ApertureMacro{Name: rem[:starIdx], Body: rem[starIdx+1:]}
}

func parseLoadPolarity(inner, raw string) ast.Node {
	switch strings.TrimPrefix(inner, "LP") {
	case "D":
		return &ast.LoadPolarity{Polarity: ast.Dark}
	case "C":
		return &ast.LoadPolarity{Polarity: ast.Clear}
	default:
		return &ast.UnknownCommand{Raw: raw}
	}
}

func parseLoadMirroring(inner, raw string) ast.Node {
	switch strings.TrimPrefix(inner, "LM") {
	case "N":
		return &ast.LoadMirroring{Mirroring: ast.MirrorNone}
	case "X":
		return &ast.LoadMirroring{Mirroring: ast.MirrorX}
	case "Y":
		return &ast.LoadMirroring{Mirroring: ast.MirrorY}
	case "XY":
		return &ast.LoadMirroring{Mirroring: ast.MirrorXY}
	default:
		return &ast.UnknownCommand{Raw: raw}
	}
}

func parseLoadRotation(inner, raw string) ast.Node {
	v, err := strconv.ParseFloat(strings.TrimPrefix(inner, "LR"), 64)
	if err != nil {
		return &ast.UnknownCommand{Raw: raw}
	}
	return &ast.LoadRotation{Degrees: v}
}

func parseLoadScaling(inner, raw string) ast.Node {
	v, err := strconv.ParseFloat(strings.TrimPrefix(inner, "LS"), 64)
	if err != nil {
		return &ast.UnknownCommand{Raw: raw}
	}
	return &ast.LoadScaling{Factor: v}
}

func parseStepRepeat(inner, raw string) ast.Node {
	rem := strings.TrimPrefix(inner, "SR")
	if rem == "" {
		return &ast.StepRepeat{XCount: 1, YCount: 1}
	}
	fields := scanLetterFloats(rem, "XYIJ")
	sr := &ast.StepRepeat{XCount: 1, YCount: 1}
	if v, ok := fields['X']; ok {
		sr.XCount = int(v)
	}
	if v, ok := fields['Y']; ok {
		sr.YCount = int(v)
	}
	if v, ok := fields['I']; ok {
		sr.IStep = v
	}
	if v, ok := fields['J']; ok {
		sr.JStep = v
	}
	if sr.XCount < 1 {
		sr.XCount = 1
	}
	if sr.YCount < 1 {
		sr.YCount = 1
	}
	if sr.IStep < 0 || sr.JStep < 0 {
		return &ast.UnknownCommand{Raw: raw}
	}
	return sr
}

// scanLetterFloats splits ins by the letters of template, used as
// ordered delimiters, into a symbol->value map.
func scanLetterFloats(ins, template string) map[byte]float64 {
	out := make(map[byte]float64)
	positions := make([]int, len(template))
	for i := 0; i < len(template); i++ {
		positions[i] = strings.IndexByte(ins, template[i])
	}
	type entry struct {
		pos    int
		letter byte
	}
	var entries []entry
	for i, p := range positions {
		if p != -1 {
			entries = append(entries, entry{p, template[i]})
		}
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].pos < entries[i].pos {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	for idx, e := range entries {
		end := len(ins)
		if idx+1 < len(entries) {
			end = entries[idx+1].pos
		}
		v, err := strconv.ParseFloat(ins[e.pos+1:end], 64)
		if err == nil {
			out[e.letter] = v
		}
	}
	return out
}

// splitAttribute splits the remainder of a %TF/%TA/%TO block on comma:
// the head is the attribute name, the tail its ordered values.
func splitAttribute(inner, prefix string) (name string, values []string) {
	rem := strings.TrimPrefix(inner, prefix)
	parts := strings.Split(rem, ",")
	name = parts[0]
	if len(parts) > 1 {
		values = parts[1:]
	}
	return name, values
}

func parseDeleteAttribute(inner string) ast.Node {
	rem := strings.TrimPrefix(inner, "TD")
	if strings.HasPrefix(rem, ".") {
		return &ast.DeleteAttribute{Name: strings.TrimPrefix(rem, ".")}
	}
	return &ast.DeleteAttribute{Name: rem}
}
