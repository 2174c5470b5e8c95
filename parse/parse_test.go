package parse

import (
	"testing"

	"github.com/tscircuit/gerberts/ast"
)

func TestParseMinimalMoveAndDraw(t *testing.T) {
	src := "%FSLAX26Y26*%\n%MOMM*%\n%ADD10C,0.1*%\nD10*\nX0Y0D02*\nX1000000Y1000000D01*\nM02*"
	nodes := Parse(src)
	if len(nodes) != 7 {
		t.Fatalf("got %d nodes, want 7: %+v", len(nodes), nodes)
	}
	if nodes[0].Kind() != ast.KindFormatSpecification {
		t.Errorf("nodes[0].Kind() = %v", nodes[0].Kind())
	}
	um, ok := nodes[1].(*ast.UnitMode)
	if !ok || um.Unit != ast.Millimetres {
		t.Errorf("nodes[1] = %+v, want UnitMode(Millimetres)", nodes[1])
	}
	ad, ok := nodes[2].(*ast.ApertureDefinition)
	if !ok || ad.Code != 10 || ad.Template != "C" || len(ad.Params) != 1 || ad.Params[0] != 0.1 {
		t.Errorf("nodes[2] = %+v, want ApertureDefinition(10, C, [0.1])", nodes[2])
	}
	sel, ok := nodes[3].(*ast.SelectAperture)
	if !ok || sel.Code != 10 {
		t.Errorf("nodes[3] = %+v, want SelectAperture(10)", nodes[3])
	}
	move, ok := nodes[4].(*ast.Operation)
	if !ok || move.DCode != ast.Move || move.X == nil || *move.X != 0 || move.Y == nil || *move.Y != 0 {
		t.Errorf("nodes[4] = %+v, want Move(0,0)", nodes[4])
	}
	draw, ok := nodes[5].(*ast.Operation)
	if !ok || draw.DCode != ast.Interpolate || draw.X == nil || *draw.X != 1000000 || draw.Y == nil || *draw.Y != 1000000 {
		t.Errorf("nodes[5] = %+v, want Interpolate(1000000,1000000)", nodes[5])
	}
	if nodes[6].Kind() != ast.KindEndOfFile {
		t.Errorf("nodes[6].Kind() = %v", nodes[6].Kind())
	}
}

func TestParseAttributes(t *testing.T) {
	src := "%TF.GenerationSoftware,gerberts,1.0.0*%\n%TF.FileFunction,Copper,L1,Top*%"
	nodes := Parse(src)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	fa0, ok := nodes[0].(*ast.FileAttribute)
	if !ok || fa0.Name != "GenerationSoftware" {
		t.Fatalf("nodes[0] = %+v", nodes[0])
	}
	wantValues := []string{"gerberts", "1.0.0"}
	if len(fa0.Values) != len(wantValues) {
		t.Fatalf("Values = %v, want %v", fa0.Values, wantValues)
	}
	for i, v := range wantValues {
		if fa0.Values[i] != v {
			t.Errorf("Values[%d] = %q, want %q", i, fa0.Values[i], v)
		}
	}
	fa1 := nodes[1].(*ast.FileAttribute)
	if fa1.Name != "FileFunction" || len(fa1.Values) != 3 {
		t.Errorf("nodes[1] = %+v", nodes[1])
	}
}

func TestParseComment(t *testing.T) {
	nodes := Parse("G04 hello world*")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	c, ok := nodes[0].(*ast.Comment)
	if !ok || c.Text != "hello world" {
		t.Fatalf("nodes[0] = %+v, want Comment(\"hello world\")", nodes[0])
	}
	if got, want := c.Serialize(), "G04 hello world*"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestParseRegionBracket(t *testing.T) {
	nodes := Parse("G36*\nX0Y0D02*\nX1000Y0D01*\nX1000Y1000D01*\nG37*")
	if len(nodes) != 5 {
		t.Fatalf("got %d nodes, want 5", len(nodes))
	}
	if nodes[0].Kind() != ast.KindRegionStart {
		t.Errorf("nodes[0].Kind() = %v", nodes[0].Kind())
	}
	if nodes[4].Kind() != ast.KindRegionEnd {
		t.Errorf("nodes[4].Kind() = %v", nodes[4].Kind())
	}
}

func TestParseImplicitModeChange(t *testing.T) {
	nodes := Parse("G01X1000Y2000D01*")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	op, ok := nodes[0].(*ast.Operation)
	if !ok || op.ModeChange == nil || *op.ModeChange != ast.Linear {
		t.Fatalf("nodes[0] = %+v, want Operation with ModeChange=Linear", nodes[0])
	}
	if op.X == nil || *op.X != 1000 || op.Y == nil || *op.Y != 2000 {
		t.Errorf("nodes[0] fields = %+v", op)
	}
}

func TestParseMalformedApertureDefinitionUsesDefaults(t *testing.T) {
	nodes := Parse("%ADDxyz*%")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	ad, ok := nodes[0].(*ast.ApertureDefinition)
	if !ok {
		t.Fatalf("nodes[0] = %+v, want *ast.ApertureDefinition", nodes[0])
	}
	if ad.Code != 10 || ad.Template != "C" {
		t.Errorf("ad = %+v, want Code=10 Template=C", ad)
	}
}

func TestParseUnknownExtendedBlockPreservesBytes(t *testing.T) {
	nodes := Parse("%ZZsomethingWeird*%")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	u, ok := nodes[0].(*ast.UnknownCommand)
	if !ok || u.Serialize() != "%ZZsomethingWeird*%" {
		t.Fatalf("nodes[0] = %+v", nodes[0])
	}
}

func TestParseUnterminatedBlockBecomesUnknown(t *testing.T) {
	nodes := Parse("%FSLAX26Y26*")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if _, ok := nodes[0].(*ast.UnknownCommand); !ok {
		t.Fatalf("nodes[0] = %+v, want *ast.UnknownCommand", nodes[0])
	}
}

func TestOneRequiresExactlyOneNode(t *testing.T) {
	if _, err := One("G04 a*G04 b*"); err == nil {
		t.Fatal("One() with two commands should fail")
	}
	if _, err := One(""); err == nil {
		t.Fatal("One() with zero commands should fail")
	}
	n, err := One("M02*")
	if err != nil {
		t.Fatalf("One(\"M02*\") failed: %v", err)
	}
	if n.Kind() != ast.KindEndOfFile {
		t.Errorf("One() node kind = %v", n.Kind())
	}
}

func TestParseSelectApertureRejectsLowCodesAsOperation(t *testing.T) {
	// D1-D3 without coordinates are legacy operation opcodes, not
	// aperture selects, even though "D1" looks like it could be code 1.
	nodes := Parse("D1*")
	op, ok := nodes[0].(*ast.Operation)
	if !ok || op.DCode != ast.Interpolate {
		t.Fatalf("nodes[0] = %+v, want Operation(Interpolate)", nodes[0])
	}
}

func TestScanLetterFloatsOrdering(t *testing.T) {
	got := scanLetterFloats("Y3X2I1.5J2", "XYIJ")
	want := map[byte]float64{'X': 2, 'Y': 3, 'I': 1.5, 'J': 2}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("scanLetterFloats()[%c] = %v, want %v", k, got[k], v)
		}
	}
}
