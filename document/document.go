// Package document holds a parsed Gerber file as an ordered sequence of
// ast.Node and offers typed, filtered accessors over it. It owns the
// sequence exclusively; nodes have no external references and are
// immutable once constructed.
package document

import (
	"strings"

	"github.com/tscircuit/gerberts/ast"
	"github.com/tscircuit/gerberts/parse"
)

// Document is an ordered, append-only sequence of AST nodes.
type Document struct {
	nodes []ast.Node
}

// New returns an empty Document.
func New() *Document {
	return &Document{}
}

// Parse builds a Document from Gerber source text.
func Parse(source string) *Document {
	return &Document{nodes: parse.Parse(source)}
}

// ParseGerberFile is a package-level convenience for Parse.
func ParseGerberFile(source string) *Document {
	return Parse(source)
}

// Nodes returns the document's node sequence in parse order. The
// returned slice is a copy; mutating it does not affect the Document.
func (d *Document) Nodes() []ast.Node {
	out := make([]ast.Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// GetString concatenates each node's serialization with a single
// newline separator and a trailing newline.
func (d *Document) GetString() string {
	var b strings.Builder
	for _, n := range d.nodes {
		b.WriteString(n.Serialize())
		b.WriteByte('\n')
	}
	return b.String()
}

// AddCommand appends a node to the sequence. If x is a string, it is
// parsed and every resulting node is appended in order; otherwise x
// must be an ast.Node, which is appended directly.
func (d *Document) AddCommand(x any) {
	switch v := x.(type) {
	case string:
		d.nodes = append(d.nodes, parse.Parse(v)...)
	case ast.Node:
		d.nodes = append(d.nodes, v)
	}
}

// EnsureEndOfFile appends an EndOfFile node if the sequence contains
// none.
func (d *Document) EnsureEndOfFile() {
	for _, n := range d.nodes {
		if n.Kind() == ast.KindEndOfFile {
			return
		}
	}
	d.nodes = append(d.nodes, &ast.EndOfFile{})
}

// FormatSpecification returns the document's format specification, if
// any was parsed.
func (d *Document) FormatSpecification() (*ast.FormatSpecification, bool) {
	for _, n := range d.nodes {
		if fs, ok := n.(*ast.FormatSpecification); ok {
			return fs, true
		}
	}
	return nil, false
}

// UnitMode returns the document's declared unit mode, if any.
func (d *Document) UnitMode() (*ast.UnitMode, bool) {
	for _, n := range d.nodes {
		if um, ok := n.(*ast.UnitMode); ok {
			return um, true
		}
	}
	return nil, false
}

// ApertureDefinitions returns every ApertureDefinition node in order.
func (d *Document) ApertureDefinitions() []*ast.ApertureDefinition {
	var out []*ast.ApertureDefinition
	for _, n := range d.nodes {
		if ad, ok := n.(*ast.ApertureDefinition); ok {
			out = append(out, ad)
		}
	}
	return out
}

// FileAttributes returns every FileAttribute node in order.
func (d *Document) FileAttributes() []*ast.FileAttribute {
	var out []*ast.FileAttribute
	for _, n := range d.nodes {
		if fa, ok := n.(*ast.FileAttribute); ok {
			out = append(out, fa)
		}
	}
	return out
}

// Operations returns every Operation node in order.
func (d *Document) Operations() []*ast.Operation {
	var out []*ast.Operation
	for _, n := range d.nodes {
		if op, ok := n.(*ast.Operation); ok {
			out = append(out, op)
		}
	}
	return out
}

// Comments returns every Comment node in order.
func (d *Document) Comments() []*ast.Comment {
	var out []*ast.Comment
	for _, n := range d.nodes {
		if c, ok := n.(*ast.Comment); ok {
			out = append(out, c)
		}
	}
	return out
}
