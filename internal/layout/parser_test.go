package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicam001/order-extract/internal/common"
)

func TestParseRejectsUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "plain text, not a document")

	_, err := NewParser().Parse(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParse))
	assert.Contains(t, err.Error(), "PDF, HTML, JSON")
}
