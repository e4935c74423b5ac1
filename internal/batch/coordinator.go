package batch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vicam001/order-extract/constants"
	"github.com/vicam001/order-extract/internal/common"
	"github.com/vicam001/order-extract/internal/entity"
	"github.com/vicam001/order-extract/internal/ingest"
	"github.com/vicam001/order-extract/internal/pipeline"
)

// FileFailure is one rejected file, reported out of band from the accepted
// orders.
type FileFailure struct {
	Filename string               `json:"filename"`
	Message  string               `json:"message"`
	Status   constants.FileStatus `json:"status"`
}

// Stats summarizes one batch run.
type Stats struct {
	Scanned   uint32 `json:"scanned"`
	Succeeded uint32 `json:"succeeded"`
	Skipped   uint32 `json:"skipped"`
	Failed    uint32 `json:"failed"`
}

// Result aggregates a batch run: accepted orders in input order plus per-file
// failures. One file's outcome never affects another's.
type Result struct {
	BatchID  uuid.UUID      `json:"batch_id"`
	Orders   []entity.Order `json:"orders"`
	Failures []FileFailure  `json:"failures,omitempty"`
	Stats    Stats          `json:"stats"`
}

// Progress is invoked after each file so a caller can surface a progress
// indicator. done counts processed files, total the batch size.
type Progress func(done, total int)

// Upload is one named in-memory document.
type Upload struct {
	Name string
	Data []byte
}

// Coordinator processes documents one at a time in sequence. No parallel
// fan-out; the only state shared across files is the append-only result.
type Coordinator struct {
	Logger      *slog.Logger
	Processor   *pipeline.Processor
	Stager      *ingest.Stager
	MaxFileSize int64
	OnProgress  Progress
}

func NewCoordinator(logger *slog.Logger, proc *pipeline.Processor, stager *ingest.Stager, maxFileSize int64) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxFileSize <= 0 {
		maxFileSize = constants.MaxFileSizeBytes
	}
	return &Coordinator{Logger: logger, Processor: proc, Stager: stager, MaxFileSize: maxFileSize}
}

// ProcessFiles runs the pipeline over documents already on disk.
func (c *Coordinator) ProcessFiles(ctx context.Context, paths []string) Result {
	res := newResult()
	ctx = common.WithBatchID(ctx, res.BatchID.String())

	for i, path := range paths {
		res.Stats.Scanned++
		c.processPath(ctx, path, &res)
		c.progress(i+1, len(paths))
	}

	c.Logger.Info("batch.done",
		"batch_id", res.BatchID,
		"scanned", res.Stats.Scanned,
		"succeeded", res.Stats.Succeeded,
		"skipped", res.Stats.Skipped,
		"failed", res.Stats.Failed,
	)
	return res
}

// ProcessUploads stages each named blob, parses it, and removes the staged
// bytes before moving on to the next file.
func (c *Coordinator) ProcessUploads(ctx context.Context, uploads []Upload) Result {
	res := newResult()
	ctx = common.WithBatchID(ctx, res.BatchID.String())

	for i, up := range uploads {
		res.Stats.Scanned++
		c.processUpload(ctx, up, &res)
		c.progress(i+1, len(uploads))
	}

	c.Logger.Info("batch.done",
		"batch_id", res.BatchID,
		"scanned", res.Stats.Scanned,
		"succeeded", res.Stats.Succeeded,
		"skipped", res.Stats.Skipped,
		"failed", res.Stats.Failed,
	)
	return res
}

// ProcessDirectory walks root and batches every file with an allowed
// extension, skipping hidden entries.
func (c *Coordinator) ProcessDirectory(ctx context.Context, root string) (Result, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ingest.IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ingest.AllowedExt(filepath.Ext(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return newResult(), common.WrapError(err, "walk directory")
	}
	return c.ProcessFiles(ctx, paths), nil
}

func (c *Coordinator) processPath(ctx context.Context, path string, res *Result) {
	name := filepath.Base(path)
	ctx = common.WithFile(ctx, name)

	info, err := os.Stat(path)
	if err != nil {
		res.fail(name, err.Error(), constants.FileStatusFailed)
		c.Logger.Error("batch.file.failed", "file", name, "err", err)
		return
	}
	if info.Size() > c.MaxFileSize {
		tooLarge := &ingest.ErrFileTooLarge{Name: name, Max: c.MaxFileSize}
		res.fail(name, tooLarge.Error(), constants.FileStatusSkipped)
		c.Logger.Warn("batch.file.skipped", "file", name, "size", info.Size())
		return
	}

	order, err := c.Processor.ProcessFile(ctx, path)
	if err != nil {
		res.fail(name, err.Error(), constants.FileStatusFailed)
		c.Logger.Error("batch.file.failed", "file", name, "err", err)
		return
	}
	res.accept(order)
	c.Logger.Info("batch.file.ok", "file", name, "shipment_id", order.Header.ShipmentID)
}

func (c *Coordinator) processUpload(ctx context.Context, up Upload, res *Result) {
	ctx = common.WithFile(ctx, up.Name)

	staged, cleanup, err := c.Stager.StageBytes(up.Name, up.Data)
	if err != nil {
		status := constants.FileStatusFailed
		var tooLarge *ingest.ErrFileTooLarge
		if errors.As(err, &tooLarge) {
			status = constants.FileStatusSkipped
		}
		res.fail(up.Name, err.Error(), status)
		c.Logger.Warn("batch.file.rejected", "file", up.Name, "err", err)
		return
	}
	defer cleanup()

	order, err := c.Processor.ProcessFile(ctx, staged.Path)
	if err != nil {
		res.fail(up.Name, err.Error(), constants.FileStatusFailed)
		c.Logger.Error("batch.file.failed", "file", up.Name, "file_id", staged.ID, "err", err)
		return
	}
	res.accept(order)
	c.Logger.Info("batch.file.ok", "file", up.Name, "file_id", staged.ID, "shipment_id", order.Header.ShipmentID)
}

func (c *Coordinator) progress(done, total int) {
	if c.OnProgress != nil {
		c.OnProgress(done, total)
	}
}

func newResult() Result {
	return Result{BatchID: uuid.New()}
}

func (r *Result) accept(order entity.Order) {
	r.Orders = append(r.Orders, order)
	r.Stats.Succeeded++
}

func (r *Result) fail(name, message string, status constants.FileStatus) {
	r.Failures = append(r.Failures, FileFailure{Filename: name, Message: message, Status: status})
	if status == constants.FileStatusSkipped {
		r.Stats.Skipped++
	} else {
		r.Stats.Failed++
	}
}
