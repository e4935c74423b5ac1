package layout

import (
	"fmt"
	"strings"
)

// TextNode is one text item of a parsed document, in document order.
// SelfRef is a stable path-like identifier, unique within the tree.
type TextNode struct {
	SelfRef string `json:"self_ref"`
	Content string `json:"text"`
}

// Cell is one table cell's text content.
type Cell struct {
	Content string `json:"text"`
}

// Table is one table of a parsed document, exposed as a row-major grid.
// Grid dimensions vary per table and are not guaranteed rectangular.
type Table struct {
	SelfRef string   `json:"self_ref"`
	Grid    [][]Cell `json:"grid"`
}

// Tree is the read-only result of parsing one document: ordered text nodes
// plus ordered tables. Indices into Texts, Tables, and grid rows are only
// meaningful for documents matching the known template.
type Tree struct {
	Texts  []TextNode `json:"texts"`
	Tables []Table    `json:"tables"`
}

// TextByRef looks a text node up by its stable identifier. Lookup by ref, not
// ordinal position, tolerates reordering of earlier nodes.
func (t *Tree) TextByRef(ref string) (string, bool) {
	for _, n := range t.Texts {
		if n.SelfRef == ref {
			return n.Content, true
		}
	}
	return "", false
}

// TableAt returns the table at index i, or false when out of range.
func (t *Tree) TableAt(i int) (*Table, bool) {
	if i < 0 || i >= len(t.Tables) {
		return nil, false
	}
	return &t.Tables[i], true
}

// TextRef builds the stable identifier for the nth text node.
func TextRef(n int) string { return fmt.Sprintf("#/texts/%d", n) }

// TableRef builds the stable identifier for the nth table.
func TableRef(n int) string { return fmt.Sprintf("#/tables/%d", n) }

// TableView is the row-access capability field extraction runs against.
// Grid-backed and flat-cell-list-backed tables expose the same shape.
type TableView interface {
	// Row returns the cells of row i, or false when the row is absent.
	Row(i int) ([]Cell, bool)
	// RowCount reports how many rows the view exposes.
	RowCount() int
}

// Row implements TableView over the grid.
func (t *Table) Row(i int) ([]Cell, bool) {
	if i < 0 || i >= len(t.Grid) {
		return nil, false
	}
	return t.Grid[i], true
}

// RowCount implements TableView over the grid.
func (t *Table) RowCount() int { return len(t.Grid) }

// CellList views a flat cell sequence as single-cell rows, for sources that
// do not preserve grid structure.
type CellList []Cell

func (c CellList) Row(i int) ([]Cell, bool) {
	if i < 0 || i >= len(c) {
		return nil, false
	}
	return c[i : i+1], true
}

func (c CellList) RowCount() int { return len(c) }

// Flatten returns the table's cells as one flat list, row by row.
func (t *Table) Flatten() CellList {
	var out CellList
	for _, row := range t.Grid {
		out = append(out, row...)
	}
	return out
}

func (t *Tree) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tree{texts=%d tables=%d", len(t.Texts), len(t.Tables))
	for i := range t.Tables {
		fmt.Fprintf(&b, " t%d=%dx", i, len(t.Tables[i].Grid))
	}
	b.WriteString("}")
	return b.String()
}
