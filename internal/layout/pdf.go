package layout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/vicam001/order-extract/internal/common"
)

// pdfParser builds a layout tree from a PDF by decoding the text-show
// operators of each page's content stream together with their positions.
// Runs sharing a baseline form a line; consecutive lines with two or more
// x-separated cells coalesce into a table, everything else becomes a text
// node in reading order.
type pdfParser struct {
	conf *model.Configuration
}

// NewPDFParser returns the pdfcpu-backed PDF parser.
func NewPDFParser() Parser {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfParser{conf: conf}
}

func (p *pdfParser) Parse(ctx context.Context, path string) (*Tree, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, common.NewParseError(string(FormatPDF), err)
	}
	if pageCount == 0 {
		return nil, common.NewParseError(string(FormatPDF), fmt.Errorf("document has no pages"))
	}

	tempDir, err := os.MkdirTemp("", "orderextract_pdf_*")
	if err != nil {
		return nil, common.NewParseError(string(FormatPDF), err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	tree := &Tree{}
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return nil, common.NewParseError(string(FormatPDF), err)
		}
		content, err := p.extractPageContent(path, tempDir, page)
		if err != nil {
			return nil, common.NewParseError(string(FormatPDF), err)
		}
		appendPage(tree, decodeTextRuns(content))
	}

	if len(tree.Texts) == 0 && len(tree.Tables) == 0 {
		return nil, common.NewParseError(string(FormatPDF), fmt.Errorf("no text content found"))
	}
	return tree, nil
}

// extractPageContent dumps one page's raw content stream via pdfcpu and reads
// it back from the extraction directory.
func (p *pdfParser) extractPageContent(path, tempDir string, page int) (string, error) {
	pageSelection := []string{strconv.Itoa(page)}
	if err := api.ExtractContentFile(path, tempDir, pageSelection, p.conf); err != nil {
		return "", fmt.Errorf("extract content for page %d: %w", page, err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", baseName, page))
	raw, err := os.ReadFile(contentFile)
	if err != nil {
		return "", fmt.Errorf("read content for page %d: %w", page, err)
	}
	return string(raw), nil
}

// textRun is one decoded text-show operation with its page position.
type textRun struct {
	x, y float64
	end  float64 // rough right edge, used to merge adjacent runs
	text string
}

// decodeTextRuns walks the content stream tokens tracking the text matrix
// well enough to attribute a position to every shown string.
func decodeTextRuns(content string) []textRun {
	var (
		runs     []textRun
		operands []string
		x, y     float64
		lineX    float64
		leading  = 12.0
		fontSize = 10.0
	)

	show := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		advance := float64(len(text)) * fontSize * 0.5
		runs = append(runs, textRun{x: x, y: y, end: x + advance, text: text})
		x += advance
	}

	popFloats := func(n int) []float64 {
		out := make([]float64, n)
		if len(operands) < n {
			return out
		}
		for i := 0; i < n; i++ {
			out[i], _ = strconv.ParseFloat(operands[len(operands)-n+i], 64)
		}
		return out
	}

	for _, tok := range tokenizeContent(content) {
		switch {
		case strings.HasPrefix(tok, "("):
			operands = append(operands, tok)
		case isNumericToken(tok):
			operands = append(operands, tok)
		case tok == "Tm":
			m := popFloats(6)
			x, y = m[4], m[5]
			lineX = x
			operands = operands[:0]
		case tok == "Td", tok == "TD":
			m := popFloats(2)
			lineX += m[0]
			y += m[1]
			x = lineX
			if tok == "TD" && m[1] != 0 {
				leading = -m[1]
			}
			operands = operands[:0]
		case tok == "TL":
			m := popFloats(1)
			if m[0] != 0 {
				leading = m[0]
			}
			operands = operands[:0]
		case tok == "Tf":
			m := popFloats(1)
			if m[0] > 0 {
				fontSize = m[0]
			}
			operands = operands[:0]
		case tok == "T*":
			y -= leading
			x = lineX
			operands = operands[:0]
		case tok == "Tj", tok == "'", tok == "\"":
			if tok != "Tj" {
				y -= leading
				x = lineX
			}
			if s, ok := lastString(operands); ok {
				show(decodePDFString(s))
			}
			operands = operands[:0]
		case tok == "TJ":
			for _, op := range operands {
				if strings.HasPrefix(op, "(") {
					show(decodePDFString(op))
				}
			}
			operands = operands[:0]
		case tok == "BT", tok == "ET":
			operands = operands[:0]
		default:
			// Any other operator consumes its operands.
			operands = operands[:0]
		}
	}

	return runs
}

// tokenizeContent splits a content stream into tokens, keeping parenthesized
// strings (escapes and nesting included) as single tokens and flattening
// TJ arrays.
func tokenizeContent(content string) []string {
	var tokens []string
	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '(':
			depth := 0
			j := i
			for ; j < len(content); j++ {
				if content[j] == '\\' {
					j++
					continue
				}
				if content[j] == '(' {
					depth++
				}
				if content[j] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if j >= len(content) {
				j = len(content) - 1
			}
			tokens = append(tokens, content[i:j+1])
			i = j + 1
		case c == '[' || c == ']':
			i++
		case c == '<':
			// Hex strings and dict markers carry no template text we use.
			j := strings.IndexByte(content[i+1:], '>')
			if j < 0 {
				i = len(content)
			} else {
				i += j + 2
			}
		case c == ' ' || c == '\n' || c == '\r' || c == '\t':
			i++
		default:
			j := i
			for j < len(content) && !strings.ContainsRune(" \t\r\n([<]", rune(content[j])) {
				j++
			}
			tokens = append(tokens, content[i:j])
			i = j
		}
	}
	return tokens
}

func isNumericToken(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

func lastString(operands []string) (string, bool) {
	for i := len(operands) - 1; i >= 0; i-- {
		if strings.HasPrefix(operands[i], "(") {
			return operands[i], true
		}
	}
	return "", false
}

// decodePDFString strips the surrounding parentheses and resolves the escape
// sequences of a literal PDF string.
func decodePDFString(tok string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Up to three octal digits.
			val := 0
			n := 0
			for n < 3 && i+n < len(s) && s[i+n] >= '0' && s[i+n] <= '7' {
				val = val*8 + int(s[i+n]-'0')
				n++
			}
			i += n - 1
			b.WriteRune(rune(val))
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// rawLine groups runs sharing a baseline.
type rawLine struct {
	y    float64
	runs []textRun
}

const (
	baselineTolerance = 2.0
	cellGap           = 6.0
)

// appendPage turns one page's runs into text nodes and tables appended to the
// tree. Reading order is top-to-bottom, left-to-right.
func appendPage(tree *Tree, runs []textRun) {
	if len(runs) == 0 {
		return
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].y != runs[j].y {
			return runs[i].y > runs[j].y
		}
		return runs[i].x < runs[j].x
	})

	var lines []rawLine
	for _, r := range runs {
		if len(lines) > 0 && abs(lines[len(lines)-1].y-r.y) <= baselineTolerance {
			last := &lines[len(lines)-1]
			last.runs = append(last.runs, r)
			continue
		}
		lines = append(lines, rawLine{y: r.y, runs: []textRun{r}})
	}

	var grid [][]Cell
	flushTable := func() {
		if len(grid) == 0 {
			return
		}
		tree.Tables = append(tree.Tables, Table{SelfRef: TableRef(len(tree.Tables)), Grid: grid})
		grid = nil
	}

	for _, ln := range lines {
		cells := lineCells(ln.runs)
		if len(cells) >= 2 {
			grid = append(grid, cells)
			continue
		}
		flushTable()
		if len(cells) == 0 {
			continue
		}
		content := cells[0].Content
		if content == "" {
			continue
		}
		tree.Texts = append(tree.Texts, TextNode{SelfRef: TextRef(len(tree.Texts)), Content: content})
	}
	flushTable()
}

// lineCells merges runs separated by less than a cell gap into one cell;
// wider gaps split the line into columns.
func lineCells(runs []textRun) []Cell {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].x < runs[j].x })

	var cells []Cell
	cur := runs[0]
	for _, r := range runs[1:] {
		if r.x-cur.end <= cellGap {
			cur.text += " " + r.text
			cur.end = r.end
			continue
		}
		if content := normalizeSpace(cur.text); content != "" {
			cells = append(cells, Cell{Content: content})
		}
		cur = r
	}
	if content := normalizeSpace(cur.text); content != "" {
		cells = append(cells, Cell{Content: content})
	}
	return cells
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
