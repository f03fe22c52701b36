package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/doc-processor/constants"
	"github.com/joseph-ayodele/doc-processor/internal/common"
)

// Config for the PDF extractor.
type Config struct {
	MaxPages int // 0 = no limit
}

// PDFExtractor reads embedded text from PDF files, page by page.
type PDFExtractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewPDFExtractor(cfg Config, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{cfg: cfg, logger: logger.With("component", "extractor")}
}

// Extract opens the file and concatenates each page's text in order. A page
// with no extractable text contributes an empty string. Any open/parse failure
// surfaces as an EXTRACTION_ERROR with the underlying cause preserved.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (res TextExtractionResult, err error) {
	start := time.Now()

	if !constants.IsAllowedExt(filepath.Ext(path)) {
		return TextExtractionResult{}, common.NewExtractionError(
			"unsupported file type", fmt.Errorf("extension %q", filepath.Ext(path)))
	}

	// The pdf library panics on some malformed cross-reference tables; convert
	// that into the same extraction error as a regular parse failure.
	defer func() {
		if r := recover(); r != nil {
			err = common.NewExtractionError("error extracting text from PDF", fmt.Errorf("%v", r))
			res = TextExtractionResult{}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		e.logger.Error("extract.open_failed", "path", path, "error", err)
		return TextExtractionResult{}, common.NewExtractionError("error extracting text from PDF", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("extract.close_failed", "path", path, "error", cerr)
		}
	}()

	pages := reader.NumPage()
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		pages = e.cfg.MaxPages
	}

	var b strings.Builder
	var warnings []string
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, common.NewExtractionError("error extracting text from PDF", err)
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// No extractable text on this page; the concatenation still holds.
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		b.WriteString(text)
	}

	res = TextExtractionResult{
		Text:     b.String(),
		Pages:    pages,
		Method:   "pdf-text",
		Duration: time.Since(start),
		Warnings: warnings,
	}
	e.logger.Info("extract.ok",
		"path", path,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
