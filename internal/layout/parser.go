package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vicam001/order-extract/constants"
	"github.com/vicam001/order-extract/internal/common"
)

// Parser is Stage 1: document bytes on disk -> layout tree.
type Parser interface {
	Parse(ctx context.Context, path string) (*Tree, error)
}

// Format identifies which concrete parser handles a document.
type Format string

const (
	FormatPDF     Format = "PDF"
	FormatHTML    Format = "HTML"
	FormatJSON    Format = "JSON"
	FormatUnknown Format = ""
)

// DetectFormat picks a format from the filename extension, falling back to
// content sniffing when the extension is missing or unrecognized.
func DetectFormat(path string, head []byte) Format {
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "pdf":
		return FormatPDF
	case "html", "htm":
		return FormatHTML
	case "json":
		return FormatJSON
	}

	trimmed := bytes.TrimLeft(head, " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("%PDF-")):
		return FormatPDF
	case bytes.HasPrefix(trimmed, []byte("<")):
		return FormatHTML
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON
	}
	return FormatUnknown
}

// multiParser routes each document to the parser for its detected format.
type multiParser struct {
	pdf  Parser
	html Parser
	json Parser
}

// NewParser returns the default multi-format parser.
func NewParser() Parser {
	return &multiParser{
		pdf:  NewPDFParser(),
		html: NewHTMLParser(),
		json: NewJSONParser(),
	}
}

func (m *multiParser) Parse(ctx context.Context, path string) (*Tree, error) {
	head, err := readHead(path, 512)
	if err != nil {
		return nil, err
	}
	switch DetectFormat(path, head) {
	case FormatPDF:
		return m.pdf.Parse(ctx, path)
	case FormatHTML:
		return m.html.Parse(ctx, path)
	case FormatJSON:
		return m.json.Parse(ctx, path)
	default:
		return nil, unsupportedFormatError(path)
	}
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewParseError(string(FormatUnknown), err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, n)
	read, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, common.NewParseError(string(FormatUnknown), err)
	}
	return head[:read], nil
}

func unsupportedFormatError(path string) error {
	return common.NewParseError(string(FormatUnknown),
		fmt.Errorf("unsupported document format: %s (expected one of %s)",
			filepath.Base(path), strings.Join(constants.Formats, ", ")))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
