package document

import (
	"strings"
	"testing"

	"github.com/tscircuit/gerberts/ast"
)

func TestParseAndGetStringRoundTrip(t *testing.T) {
	src := "%FSLAX26Y26*%\n%MOMM*%\n%ADD10C,0.1*%\nD10*\nX0Y0D02*\nX1000000Y1000000D01*\nM02*\n"
	doc := Parse(src)
	got := doc.GetString()
	if got != src {
		t.Errorf("GetString() = %q, want %q", got, src)
	}
}

func TestFilteredAccessors(t *testing.T) {
	src := strings.Join([]string{
		"%TF.GenerationSoftware,gerberts,1.0.0*%",
		"%FSLAX26Y26*%",
		"%MOMM*%",
		"%ADD10C,0.1*%",
		"%ADD11R,1X0.5*%",
		"G04 leading comment*",
		"D10*",
		"X0Y0D02*",
		"X1000Y1000D01*",
		"M02*",
	}, "\n")
	doc := Parse(src)

	if _, ok := doc.FormatSpecification(); !ok {
		t.Error("FormatSpecification() not found")
	}
	um, ok := doc.UnitMode()
	if !ok || um.Unit != ast.Millimetres {
		t.Errorf("UnitMode() = %+v, %v", um, ok)
	}
	if ads := doc.ApertureDefinitions(); len(ads) != 2 {
		t.Errorf("ApertureDefinitions() len = %d, want 2", len(ads))
	}
	if fas := doc.FileAttributes(); len(fas) != 1 || fas[0].Name != "GenerationSoftware" {
		t.Errorf("FileAttributes() = %+v", fas)
	}
	if ops := doc.Operations(); len(ops) != 2 {
		t.Errorf("Operations() len = %d, want 2", len(ops))
	}
	if cs := doc.Comments(); len(cs) != 1 || cs[0].Text != "leading comment" {
		t.Errorf("Comments() = %+v", cs)
	}
}

func TestAddCommandString(t *testing.T) {
	doc := New()
	doc.AddCommand("%MOMM*%")
	doc.AddCommand("G04 hi*")
	nodes := doc.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("Nodes() len = %d, want 2", len(nodes))
	}
	if nodes[0].Kind() != ast.KindUnitMode {
		t.Errorf("nodes[0].Kind() = %v", nodes[0].Kind())
	}
	if nodes[1].Kind() != ast.KindComment {
		t.Errorf("nodes[1].Kind() = %v", nodes[1].Kind())
	}
}

func TestAddCommandNode(t *testing.T) {
	doc := New()
	doc.AddCommand(&ast.Comment{Text: "direct"})
	if len(doc.Nodes()) != 1 {
		t.Fatalf("Nodes() len = %d, want 1", len(doc.Nodes()))
	}
}

func TestEnsureEndOfFile(t *testing.T) {
	doc := New()
	doc.AddCommand("G04 a*")
	doc.EnsureEndOfFile()
	nodes := doc.Nodes()
	if len(nodes) != 2 || nodes[1].Kind() != ast.KindEndOfFile {
		t.Fatalf("nodes = %+v, want [Comment, EndOfFile]", nodes)
	}
	doc.EnsureEndOfFile()
	if len(doc.Nodes()) != 2 {
		t.Errorf("EnsureEndOfFile() should be idempotent, got %d nodes", len(doc.Nodes()))
	}
}

func TestNodesReturnsCopy(t *testing.T) {
	doc := New()
	doc.AddCommand("G04 a*")
	nodes := doc.Nodes()
	nodes[0] = &ast.Comment{Text: "mutated"}
	if doc.Nodes()[0].(*ast.Comment).Text != "a" {
		t.Error("Nodes() leaked internal slice; mutation affected Document")
	}
}
