package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageWritesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir, 1024)

	payload := []byte("<html><body>order</body></html>")
	staged, cleanup, err := s.Stage("order.html", bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, "order.html", staged.Name)
	assert.Equal(t, ".html", staged.Ext)
	assert.Equal(t, int64(len(payload)), staged.Size)
	assert.NotEqual(t, staged.ID.String(), "00000000-0000-0000-0000-000000000000")

	sum := sha256.Sum256(payload)
	assert.Equal(t, hex.EncodeToString(sum[:]), staged.HashHex)

	onDisk, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)

	cleanup()
	_, err = os.Stat(staged.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestStageRejectsOversized(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir, 8)

	_, _, err := s.Stage("big.pdf", bytes.NewReader(make([]byte, 64)))
	require.Error(t, err)

	var tooLarge *ErrFileTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big.pdf", tooLarge.Name)

	// Nothing left behind after the rejection.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStageBytesRejectsOversizedWithoutTouchingDisk(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir, 4)

	_, _, err := s.StageBytes("big.html", make([]byte, 32))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStageExactlyAtLimit(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(dir, 16)

	staged, cleanup, err := s.Stage("edge.json", bytes.NewReader(make([]byte, 16)))
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, int64(16), staged.Size)
}
