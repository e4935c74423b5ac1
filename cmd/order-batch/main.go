package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"

	"github.com/vicam001/order-extract/internal/batch"
	"github.com/vicam001/order-extract/internal/common"
	"github.com/vicam001/order-extract/internal/export"
	"github.com/vicam001/order-extract/internal/extract"
	"github.com/vicam001/order-extract/internal/ingest"
	"github.com/vicam001/order-extract/internal/layout"
	"github.com/vicam001/order-extract/internal/pipeline"
	"github.com/vicam001/order-extract/internal/schema"
	"github.com/vicam001/order-extract/internal/session"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir      = flag.String("dir", "", "directory to process order documents from")
		out      = flag.String("out", "", "output JSON file path (defaults to stdout)")
		xlsxOut  = flag.String("xlsx", "", "optional XLSX output file path")
		template = flag.String("template", "", "optional TOML field-mapping template (defaults to the built-in SEMAT template)")
	)
	flag.Parse()

	files := flag.Args()
	if *dir == "" && len(files) == 0 {
		printError("Error: pass --dir or one or more document paths\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Resolve the field-mapping template
	tplPath := *template
	if tplPath == "" {
		tplPath = cfg.Template.Path
	}
	tpl := extract.DefaultTemplate()
	if tplPath != "" {
		loaded, err := extract.LoadTemplate(tplPath)
		if err != nil {
			logger.Error("failed to load template", "path", tplPath, "error", err)
			os.Exit(1)
		}
		tpl = loaded
	}
	logger.Info("using template", "name", tpl.Name)

	// Wire the extraction pipeline
	validator, err := schema.NewValidator()
	if err != nil {
		logger.Error("failed to compile order schema", "error", err)
		os.Exit(1)
	}
	processor := pipeline.NewProcessor(logger, layout.NewParser(), extract.NewBuilder(logger, tpl), validator)
	stager := ingest.NewStager(cfg.Staging.Dir, cfg.Batch.MaxFileSize)
	coordinator := batch.NewCoordinator(logger, processor, stager, cfg.Batch.MaxFileSize)
	coordinator.OnProgress = func(done, total int) {
		printError("processed %d/%d files\r", done, total)
	}

	// Run the batch
	var result batch.Result
	if *dir != "" {
		result, err = coordinator.ProcessDirectory(ctx, *dir)
		if err != nil {
			logger.Error("failed to process directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
	} else {
		result = coordinator.ProcessFiles(ctx, files)
	}
	printError("\n")

	for _, failure := range result.Failures {
		printError("%s: %s (%s)\n", failure.Filename, failure.Message, failure.Status)
	}

	// Collect accepted orders into a review session
	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Error("failed to initialize session logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	sess := session.NewSession(zapLogger)
	sess.Append(result.Orders...)

	formatted, err := sess.MarshalIndent()
	if err != nil {
		logger.Error("failed to marshal orders", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Println(string(formatted))
	} else if err := os.WriteFile(*out, formatted, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}

	// Optional XLSX export for spreadsheet review
	if *xlsxOut != "" {
		exportService := export.NewService(logger)
		xlsxBytes, err := exportService.OrdersXLSX(ctx, sess.Orders())
		if err != nil {
			logger.Error("failed to export orders", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, xlsxBytes, 0644); err != nil {
			logger.Error("failed to write XLSX file", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
	}

	// Log summary
	logger.Info("batch processing complete",
		"scanned", result.Stats.Scanned,
		"succeeded", result.Stats.Succeeded,
		"skipped", result.Stats.Skipped,
		"failed", result.Stats.Failed,
	)

	if result.Stats.Failed > 0 {
		os.Exit(2)
	}
}
