package pipeline

import (
	"context"
	"log/slog"

	"github.com/vicam001/order-extract/constants"
	"github.com/vicam001/order-extract/internal/common"
	"github.com/vicam001/order-extract/internal/entity"
	"github.com/vicam001/order-extract/internal/extract"
	"github.com/vicam001/order-extract/internal/layout"
	"github.com/vicam001/order-extract/internal/schema"
)

// Processor runs one document through parse (layout tree), build (candidate
// record), and validate (accepted record). Each call is independent and
// synchronous; failures carry the stage taxonomy for the caller to report.
type Processor struct {
	Logger    *slog.Logger
	Parser    layout.Parser
	Builder   *extract.Builder
	Validator *schema.Validator
}

func NewProcessor(logger *slog.Logger, parser layout.Parser, builder *extract.Builder, validator *schema.Validator) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Parser: parser, Builder: builder, Validator: validator}
}

// ProcessFile extracts a validated order from the staged document at path.
func (p *Processor) ProcessFile(ctx context.Context, path string) (entity.Order, error) {
	log := p.scopedLogger(ctx)

	tree, err := p.Parser.Parse(ctx, path)
	if err != nil {
		log.Error("processor.parse.failed", "path", path, "err", err)
		return entity.Order{}, err
	}
	log.Info("processor.parse.ok",
		"path", path,
		"status", constants.FileStatusParsed,
		"texts", len(tree.Texts),
		"tables", len(tree.Tables),
	)

	candidate, err := p.Builder.Build(tree)
	if err != nil {
		log.Error("processor.build.failed", "path", path, "err", err)
		return entity.Order{}, err
	}

	order, err := p.Validator.Validate(candidate)
	if err != nil {
		log.Error("processor.validate.failed", "path", path, "err", err)
		return entity.Order{}, err
	}
	log.Info("processor.validate.ok",
		"path", path,
		"status", constants.FileStatusExtracted,
		"shipment_id", order.Header.ShipmentID,
	)
	return order, nil
}

// scopedLogger carries the batch id and source filename set by the
// coordinator into every stage event.
func (p *Processor) scopedLogger(ctx context.Context) *slog.Logger {
	log := p.Logger
	if batchID := common.BatchIDFromContext(ctx); batchID != "" {
		log = log.With("batch_id", batchID)
	}
	if name := common.FileFromContext(ctx); name != "" {
		log = log.With("file", name)
	}
	return log
}
