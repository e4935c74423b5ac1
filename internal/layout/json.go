package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vicam001/order-extract/internal/common"
)

// doclingExport mirrors the upstream converter's document export: text items
// carry self_ref + text, tables nest their grid under a data envelope.
type doclingExport struct {
	Texts []struct {
		SelfRef string `json:"self_ref"`
		Text    string `json:"text"`
	} `json:"texts"`
	Tables []struct {
		SelfRef string `json:"self_ref"`
		Data    struct {
			Grid [][]struct {
				Text string `json:"text"`
			} `json:"grid"`
			TableCells []struct {
				Text string `json:"text"`
			} `json:"table_cells"`
		} `json:"data"`
	} `json:"tables"`
}

// jsonParser reads a pre-converted layout export directly. This keeps parity
// with the converter's intermediate form and gives tests a lossless fixture
// format.
type jsonParser struct{}

// NewJSONParser returns the layout-export JSON parser.
func NewJSONParser() Parser {
	return &jsonParser{}
}

func (p *jsonParser) Parse(ctx context.Context, path string) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewParseError(string(FormatJSON), err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewParseError(string(FormatJSON), err)
	}

	var export doclingExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, common.NewParseError(string(FormatJSON), err)
	}
	if len(export.Texts) == 0 && len(export.Tables) == 0 {
		return nil, common.NewParseError(string(FormatJSON),
			fmt.Errorf("document carries no texts or tables"))
	}

	tree := &Tree{}
	for i, t := range export.Texts {
		ref := t.SelfRef
		if ref == "" {
			ref = TextRef(i)
		}
		tree.Texts = append(tree.Texts, TextNode{SelfRef: ref, Content: t.Text})
	}
	for i, t := range export.Tables {
		ref := t.SelfRef
		if ref == "" {
			ref = TableRef(i)
		}
		grid := make([][]Cell, 0, len(t.Data.Grid))
		for _, row := range t.Data.Grid {
			cells := make([]Cell, 0, len(row))
			for _, c := range row {
				cells = append(cells, Cell{Content: c.Text})
			}
			grid = append(grid, cells)
		}
		// Some exports carry only the flat cell list. View it as
		// single-cell rows so row-indexed extraction still applies.
		if len(grid) == 0 && len(t.Data.TableCells) > 0 {
			flat := make(CellList, 0, len(t.Data.TableCells))
			for _, c := range t.Data.TableCells {
				flat = append(flat, Cell{Content: c.Text})
			}
			for i := 0; i < flat.RowCount(); i++ {
				row, _ := flat.Row(i)
				grid = append(grid, row)
			}
		}
		tree.Tables = append(tree.Tables, Table{SelfRef: ref, Grid: grid})
	}

	return tree, nil
}
