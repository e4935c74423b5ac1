package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellListViewsFlatCellsAsRows(t *testing.T) {
	cells := CellList{
		{Content: "Matrícula / Bastidor:"},
		{Content: "1234ABC"},
	}

	require.Equal(t, 2, cells.RowCount())

	row, ok := cells.Row(1)
	require.True(t, ok)
	require.Len(t, row, 1)
	assert.Equal(t, "1234ABC", row[0].Content)

	_, ok = cells.Row(2)
	assert.False(t, ok)
	_, ok = cells.Row(-1)
	assert.False(t, ok)
}

func TestFlattenPreservesRowOrder(t *testing.T) {
	table := Table{
		SelfRef: TableRef(0),
		Grid: [][]Cell{
			{{Content: "Marca:"}, {Content: "HYUNDAI"}},
			{{Content: "Modelo:"}, {Content: "I30"}},
		},
	}

	flat := table.Flatten()
	require.Equal(t, 4, flat.RowCount())

	var contents []string
	for i := 0; i < flat.RowCount(); i++ {
		row, ok := flat.Row(i)
		require.True(t, ok)
		contents = append(contents, row[0].Content)
	}
	assert.Equal(t, []string{"Marca:", "HYUNDAI", "Modelo:", "I30"}, contents)
}

func TestTableRowBounds(t *testing.T) {
	table := Table{Grid: [][]Cell{{{Content: "only"}}}}

	row, ok := table.Row(0)
	require.True(t, ok)
	assert.Equal(t, "only", row[0].Content)

	_, ok = table.Row(1)
	assert.False(t, ok)
	_, ok = table.Row(-1)
	assert.False(t, ok)
}
