package ast

import (
	"strconv"
	"strings"
)

// Node is a closed tagged variant: every concrete type in this package
// implements it, and sealed() prevents types outside the package from
// doing so. The renderer and Document pick out variants with a type
// switch or type assertion on the concrete node type (or by Kind()).
type Node interface {
	Kind() Kind
	// Serialize renders the node back to its canonical Gerber text,
	// including delimiters (% ... % or a trailing *).
	Serialize() string
	sealed()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSpecification declares how integer coordinate literals are to
// be interpreted for the remainder of the file.
type FormatSpecification struct {
	ZeroOmission ZeroOmission
	CoordMode    CoordMode
	XInt, XDec   int
	YInt, YDec   int
}

func (n *FormatSpecification) Kind() Kind { return KindFormatSpecification }
func (n *FormatSpecification) sealed()    {}
func (n *FormatSpecification) Serialize() string {
	zo := "L"
	if n.ZeroOmission == Trailing {
		zo = "T"
	}
	cm := "A"
	if n.CoordMode == Incremental {
		cm = "I"
	}
	return "%FS" + zo + cm +
		"X" + strconv.Itoa(n.XInt) + strconv.Itoa(n.XDec) +
		"Y" + strconv.Itoa(n.YInt) + strconv.Itoa(n.YDec) + "*%"
}

// UnitMode declares the file's measurement unit.
type UnitMode struct {
	Unit Unit
}

func (n *UnitMode) Kind() Kind { return KindUnitMode }
func (n *UnitMode) sealed()    {}
func (n *UnitMode) Serialize() string {
	if n.Unit == Inches {
		return "%MOIN*%"
	}
	return "%MOMM*%"
}

// ApertureDefinition assigns a D-code to a template with parameters.
type ApertureDefinition struct {
	Code     int
	Template string // "C", "R", "O", "P", or a user-macro name
	Params   []float64
}

func (n *ApertureDefinition) Kind() Kind { return KindApertureDefinition }
func (n *ApertureDefinition) sealed()    {}
func (n *ApertureDefinition) Serialize() string {
	var b strings.Builder
	b.WriteString("%ADD")
	b.WriteString(strconv.Itoa(n.Code))
	b.WriteString(n.Template)
	if len(n.Params) > 0 {
		b.WriteByte(',')
		for i, p := range n.Params {
			if i > 0 {
				b.WriteByte('X')
			}
			b.WriteString(formatFloat(p))
		}
	}
	b.WriteString("*%")
	return b.String()
}

// ApertureMacro stores a macro's raw body text; the body is never
// evaluated by this core.
type ApertureMacro struct {
	Name string
	Body string
}

func (n *ApertureMacro) Kind() Kind { return KindApertureMacro }
func (n *ApertureMacro) sealed()    {}
func (n *ApertureMacro) Serialize() string {
	return "%AM" + n.Name + "*" + n.Body + "*%"
}

// LoadPolarity is the %LP modal transform loader.
type LoadPolarity struct {
	Polarity Polarity
}

func (n *LoadPolarity) Kind() Kind { return KindLoadPolarity }
func (n *LoadPolarity) sealed()    {}
func (n *LoadPolarity) Serialize() string {
	if n.Polarity == Clear {
		return "%LPC*%"
	}
	return "%LPD*%"
}

// LoadMirroring is the %LM modal transform loader.
type LoadMirroring struct {
	Mirroring Mirroring
}

func (n *LoadMirroring) Kind() Kind { return KindLoadMirroring }
func (n *LoadMirroring) sealed()    {}
func (n *LoadMirroring) Serialize() string {
	return "%LM" + n.Mirroring.String() + "*%"
}

// LoadRotation is the %LR modal transform loader, degrees counter-clockwise.
type LoadRotation struct {
	Degrees float64
}

func (n *LoadRotation) Kind() Kind        { return KindLoadRotation }
func (n *LoadRotation) sealed()           {}
func (n *LoadRotation) Serialize() string { return "%LR" + formatFloat(n.Degrees) + "*%" }

// LoadScaling is the %LS modal transform loader.
type LoadScaling struct {
	Factor float64
}

func (n *LoadScaling) Kind() Kind        { return KindLoadScaling }
func (n *LoadScaling) sealed()           {}
func (n *LoadScaling) Serialize() string { return "%LS" + formatFloat(n.Factor) + "*%" }

// StepRepeat is the %SR block; a zero-value (XCount=YCount=1, no steps)
// serializes as the bare closing form "%SR*%".
type StepRepeat struct {
	XCount, YCount int
	IStep, JStep   float64
}

func (n *StepRepeat) Kind() Kind { return KindStepRepeat }
func (n *StepRepeat) sealed()    {}
func (n *StepRepeat) Serialize() string {
	if n.XCount <= 1 && n.YCount <= 1 && n.IStep == 0 && n.JStep == 0 {
		return "%SR*%"
	}
	return "%SRX" + strconv.Itoa(n.XCount) + "Y" + strconv.Itoa(n.YCount) +
		"I" + formatFloat(n.IStep) + "J" + formatFloat(n.JStep) + "*%"
}

// attribute is the shared shape of TF/TA/TO nodes: a name plus an
// ordered list of comma-separated values.
type attribute struct {
	Name   string
	Values []string
}

func (a attribute) serialize(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(a.Name)
	for _, v := range a.Values {
		b.WriteByte(',')
		b.WriteString(v)
	}
	b.WriteString("*%")
	return b.String()
}

// FileAttribute is a %TF file-level attribute.
type FileAttribute struct{ attribute }

func (n *FileAttribute) Kind() Kind        { return KindFileAttribute }
func (n *FileAttribute) sealed()           {}
func (n *FileAttribute) Serialize() string { return n.attribute.serialize("%TF.") }

// NewFileAttribute builds a FileAttribute from its name and ordered values.
func NewFileAttribute(name string, values []string) *FileAttribute {
	return &FileAttribute{attribute{Name: name, Values: values}}
}

// ApertureAttribute is a %TA aperture-dictionary attribute.
type ApertureAttribute struct{ attribute }

func (n *ApertureAttribute) Kind() Kind        { return KindApertureAttribute }
func (n *ApertureAttribute) sealed()           {}
func (n *ApertureAttribute) Serialize() string { return n.attribute.serialize("%TA.") }

// NewApertureAttribute builds an ApertureAttribute from its name and ordered values.
func NewApertureAttribute(name string, values []string) *ApertureAttribute {
	return &ApertureAttribute{attribute{Name: name, Values: values}}
}

// ObjectAttribute is a %TO object-dictionary attribute.
type ObjectAttribute struct{ attribute }

func (n *ObjectAttribute) Kind() Kind        { return KindObjectAttribute }
func (n *ObjectAttribute) sealed()           {}
func (n *ObjectAttribute) Serialize() string { return n.attribute.serialize("%TO.") }

// NewObjectAttribute builds an ObjectAttribute from its name and ordered values.
func NewObjectAttribute(name string, values []string) *ObjectAttribute {
	return &ObjectAttribute{attribute{Name: name, Values: values}}
}

// DeleteAttribute is a %TD; an empty Name deletes every attribute.
type DeleteAttribute struct {
	Name string
}

func (n *DeleteAttribute) Kind() Kind { return KindDeleteAttribute }
func (n *DeleteAttribute) sealed()    {}
func (n *DeleteAttribute) Serialize() string {
	if n.Name == "" {
		return "%TD*%"
	}
	return "%TD." + n.Name + "*%"
}

// SetInterpolationMode is a bare G01/G02/G03/G74/G75 with no coordinates.
type SetInterpolationMode struct {
	Mode InterpolationMode
}

func (n *SetInterpolationMode) Kind() Kind { return KindSetInterpolationMode }
func (n *SetInterpolationMode) sealed()    {}
func (n *SetInterpolationMode) Serialize() string {
	switch n.Mode {
	case Linear:
		return "G01*"
	case CircularCW:
		return "G02*"
	case CircularCCW:
		return "G03*"
	case SingleQuadrant:
		return "G74*"
	case MultiQuadrant:
		return "G75*"
	default:
		return "G01*"
	}
}

// Comment is a G04 comment.
type Comment struct {
	Text string
}

func (n *Comment) Kind() Kind { return KindComment }
func (n *Comment) sealed()    {}
func (n *Comment) Serialize() string {
	if n.Text == "" {
		return "G04*"
	}
	return "G04 " + n.Text + "*"
}

// RegionStart is a G36.
type RegionStart struct{}

func (n *RegionStart) Kind() Kind        { return KindRegionStart }
func (n *RegionStart) sealed()           {}
func (n *RegionStart) Serialize() string { return "G36*" }

// RegionEnd is a G37.
type RegionEnd struct{}

func (n *RegionEnd) Kind() Kind        { return KindRegionEnd }
func (n *RegionEnd) sealed()           {}
func (n *RegionEnd) Serialize() string { return "G37*" }

// Operation is a D01/D02/D03 command. A nil field means the axis was
// omitted and carries the previous modal value forward at render time.
// ModeChange records an interpolation-mode switch bundled into the same
// command by a leading G01/G02/G03 prefix.
type Operation struct {
	DCode      DCode
	X, Y, I, J *int64
	ModeChange *InterpolationMode
}

func (n *Operation) Kind() Kind { return KindOperation }
func (n *Operation) sealed()    {}
func (n *Operation) Serialize() string {
	var b strings.Builder
	if n.ModeChange != nil {
		switch *n.ModeChange {
		case Linear:
			b.WriteString("G01")
		case CircularCW:
			b.WriteString("G02")
		case CircularCCW:
			b.WriteString("G03")
		}
	}
	writeAxis := func(letter byte, v *int64) {
		if v == nil {
			return
		}
		b.WriteByte(letter)
		b.WriteString(strconv.FormatInt(*v, 10))
	}
	writeAxis('X', n.X)
	writeAxis('Y', n.Y)
	writeAxis('I', n.I)
	writeAxis('J', n.J)
	switch n.DCode {
	case Interpolate:
		b.WriteString("D01*")
	case Move:
		b.WriteString("D02*")
	case Flash:
		b.WriteString("D03*")
	default:
		b.WriteString("D01*")
	}
	return b.String()
}

// SelectAperture is a Dnn (nn >= 10) command selecting the current
// aperture. Use NewSelectAperture to construct one with validation.
type SelectAperture struct {
	Code int
}

// NewSelectAperture builds a SelectAperture, failing for codes below 10.
func NewSelectAperture(code int) (*SelectAperture, error) {
	if code < 10 {
		return nil, &InvalidApertureCodeError{Code: code}
	}
	return &SelectAperture{Code: code}, nil
}

func (n *SelectAperture) Kind() Kind        { return KindSelectAperture }
func (n *SelectAperture) sealed()           {}
func (n *SelectAperture) Serialize() string { return "D" + strconv.Itoa(n.Code) + "*" }

// InvalidApertureCodeError reports a SelectAperture built with a code < 10.
type InvalidApertureCodeError struct {
	Code int
}

func (e *InvalidApertureCodeError) Error() string {
	return "gerberts/ast: aperture code " + strconv.Itoa(e.Code) + " is below the minimum of 10"
}

// EndOfFile is an M00/M02 terminator; it always serializes to the
// canonical M02 form regardless of which short form was parsed.
type EndOfFile struct{}

func (n *EndOfFile) Kind() Kind        { return KindEndOfFile }
func (n *EndOfFile) sealed()           {}
func (n *EndOfFile) Serialize() string { return "M02*" }

// SetImagePolarity is the legacy %IP command, preserved verbatim.
type SetImagePolarity struct {
	Value string // "POS" or "NEG"
}

func (n *SetImagePolarity) Kind() Kind        { return KindSetImagePolarity }
func (n *SetImagePolarity) sealed()           {}
func (n *SetImagePolarity) Serialize() string { return "%IP" + n.Value + "*%" }

// SetOffset is the legacy %OF command, preserved verbatim.
type SetOffset struct {
	Value string // e.g. "A0.5B0.3"
}

func (n *SetOffset) Kind() Kind        { return KindSetOffset }
func (n *SetOffset) sealed()           {}
func (n *SetOffset) Serialize() string { return "%OF" + n.Value + "*%" }

// UnknownCommand preserves an unrecognized token's raw bytes verbatim,
// including its delimiters, so round-trip serialization never loses data.
type UnknownCommand struct {
	Raw string
}

func (n *UnknownCommand) Kind() Kind        { return KindUnknownCommand }
func (n *UnknownCommand) sealed()           {}
func (n *UnknownCommand) Serialize() string { return n.Raw }
