package layout

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicam001/order-extract/internal/common"
)

const sampleHTML = `<!DOCTYPE html>
<html><body>
<h1>ORDEN DE TRANSPORTE</h1>
<p>SEMAT</p>
<p>   </p>
<p>SHP-00412</p>
<table>
  <tr><td>Matrícula / Bastidor:</td><td>1234ABC</td></tr>
  <tr><td>Marca:</td><td>HYUNDAI</td></tr>
  <tr><td>Modelo:</td><td>HYUNDAI
      I30</td></tr>
</table>
<table>
  <tr><td>Punto de Recogida:</td><td>Campa Norte</td></tr>
  <tr><td>Anidada:</td><td><table><tr><td>interior</td></tr></table></td></tr>
</table>
</body></html>`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHTMLParserBuildsTree(t *testing.T) {
	path := writeTempFile(t, "order.html", sampleHTML)

	tree, err := NewHTMLParser().Parse(context.Background(), path)
	require.NoError(t, err)

	// Blank paragraphs are dropped; refs follow document order.
	require.Len(t, tree.Texts, 3)
	assert.Equal(t, "#/texts/0", tree.Texts[0].SelfRef)
	assert.Equal(t, "ORDEN DE TRANSPORTE", tree.Texts[0].Content)
	assert.Equal(t, "SHP-00412", tree.Texts[2].Content)

	content, ok := tree.TextByRef("#/texts/1")
	assert.True(t, ok)
	assert.Equal(t, "SEMAT", content)

	require.Len(t, tree.Tables, 3) // two top-level plus the nested one
	vehicle := tree.Tables[0]
	assert.Equal(t, "#/tables/0", vehicle.SelfRef)
	require.Len(t, vehicle.Grid, 3)
	assert.Equal(t, "Matrícula / Bastidor:", vehicle.Grid[0][0].Content)
	assert.Equal(t, "1234ABC", vehicle.Grid[0][1].Content)
	// Whitespace inside a cell collapses.
	assert.Equal(t, "HYUNDAI I30", vehicle.Grid[2][1].Content)
}

func TestHTMLParserNestedTableGetsOwnGrid(t *testing.T) {
	path := writeTempFile(t, "order.html", sampleHTML)

	tree, err := NewHTMLParser().Parse(context.Background(), path)
	require.NoError(t, err)

	// The outer table keeps its own rows only.
	outer := tree.Tables[1]
	require.Len(t, outer.Grid, 2)
	assert.Equal(t, "Punto de Recogida:", outer.Grid[0][0].Content)

	inner := tree.Tables[2]
	require.Len(t, inner.Grid, 1)
	assert.Equal(t, "interior", inner.Grid[0][0].Content)
}

func TestHTMLParserMissingFile(t *testing.T) {
	_, err := NewHTMLParser().Parse(context.Background(), filepath.Join(t.TempDir(), "nope.html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParse))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
		head string
		want Format
	}{
		{"pdf extension", "doc.pdf", "", FormatPDF},
		{"html extension", "doc.html", "", FormatHTML},
		{"htm extension", "doc.htm", "", FormatHTML},
		{"json extension", "doc.json", "", FormatJSON},
		{"pdf magic", "doc.bin", "%PDF-1.7 rest", FormatPDF},
		{"html sniff", "doc", "  <html>", FormatHTML},
		{"json sniff", "doc", "{\"texts\":[]}", FormatJSON},
		{"unknown", "doc.bin", "garbage", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path, []byte(tt.head)))
		})
	}
}
