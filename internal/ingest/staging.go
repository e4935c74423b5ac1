package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StagedFile is one uploaded document written to ephemeral on-disk staging
// for the duration of parsing.
type StagedFile struct {
	ID      uuid.UUID
	Name    string // original upload name
	Path    string // staged location
	Ext     string
	Size    int64
	HashHex string
}

// Stager writes uploaded bytes to a staging directory and guarantees their
// removal once parsing is done.
type Stager struct {
	Dir         string
	MaxFileSize int64
}

func NewStager(dir string, maxFileSize int64) *Stager {
	return &Stager{Dir: dir, MaxFileSize: maxFileSize}
}

// ErrFileTooLarge rejects a document before it reaches the parser.
type ErrFileTooLarge struct {
	Name string
	Max  int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file %q exceeds the %d MB size ceiling", e.Name, e.Max/(1024*1024))
}

// Stage copies r to a staged file, hashing as it goes. The returned cleanup
// must be called (normally deferred) when the staged bytes are no longer
// needed; leaving staged files behind is a resource leak.
func (s *Stager) Stage(name string, r io.Reader) (StagedFile, func(), error) {
	var out StagedFile

	ext := filepath.Ext(name)
	f, err := os.CreateTemp(s.Dir, "orderextract_*"+ext)
	if err != nil {
		return out, func() {}, fmt.Errorf("create staging file: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	h := sha256.New()
	limited := io.LimitReader(r, s.MaxFileSize+1)
	n, err := io.Copy(io.MultiWriter(f, h), limited)
	closeErr := f.Close()
	if err != nil {
		cleanup()
		return out, func() {}, fmt.Errorf("stage %q: %w", name, err)
	}
	if closeErr != nil {
		cleanup()
		return out, func() {}, fmt.Errorf("close staging file: %w", closeErr)
	}
	if n > s.MaxFileSize {
		cleanup()
		return out, func() {}, &ErrFileTooLarge{Name: name, Max: s.MaxFileSize}
	}

	out = StagedFile{
		ID:      uuid.New(),
		Name:    name,
		Path:    f.Name(),
		Ext:     ext,
		Size:    n,
		HashHex: hex.EncodeToString(h.Sum(nil)),
	}
	return out, cleanup, nil
}

// StageBytes stages an in-memory upload.
func (s *Stager) StageBytes(name string, data []byte) (StagedFile, func(), error) {
	if int64(len(data)) > s.MaxFileSize {
		return StagedFile{}, func() {}, &ErrFileTooLarge{Name: name, Max: s.MaxFileSize}
	}
	return s.Stage(name, bytes.NewReader(data))
}
