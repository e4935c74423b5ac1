package layout

import (
	"context"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/vicam001/order-extract/internal/common"
)

// htmlParser builds a layout tree from an HTML document. Block-level text
// outside tables becomes text nodes; every <table> (nested ones included)
// becomes its own grid, mirroring how the upstream converter flattens
// documents.
type htmlParser struct{}

// NewHTMLParser returns the goquery-backed HTML parser.
func NewHTMLParser() Parser {
	return &htmlParser{}
}

func (p *htmlParser) Parse(ctx context.Context, path string) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewParseError(string(FormatHTML), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewParseError(string(FormatHTML), err)
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, common.NewParseError(string(FormatHTML), err)
	}

	tree := &Tree{}

	doc.Find("p, h1, h2, h3, h4, h5, h6, li").Each(func(_ int, s *goquery.Selection) {
		if s.Closest("table").Length() > 0 {
			return
		}
		content := normalizeSpace(s.Text())
		if content == "" {
			return
		}
		tree.Texts = append(tree.Texts, TextNode{
			SelfRef: TextRef(len(tree.Texts)),
			Content: content,
		})
	})

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		grid := parseTableGrid(table)
		if len(grid) == 0 {
			return
		}
		tree.Tables = append(tree.Tables, Table{
			SelfRef: TableRef(len(tree.Tables)),
			Grid:    grid,
		})
	})

	return tree, nil
}

// parseTableGrid collects the table's own rows, leaving rows of nested tables
// to their own grids.
func parseTableGrid(table *goquery.Selection) [][]Cell {
	var grid [][]Cell
	tableNode := table.Get(0)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Closest("table").Get(0) != tableNode {
			return
		}
		var cells []Cell
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			if cell.Closest("table").Get(0) != tableNode {
				return
			}
			cells = append(cells, Cell{Content: normalizeSpace(cell.Text())})
		})
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	})

	return grid
}
