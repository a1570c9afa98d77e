// Package extract turns attachment files into plain text. It dispatches on
// the declared attachment category and falls back to OCR for PDFs whose
// embedded text layer is empty.
package extract

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
)

// OCREngine defines the interface for the external OCR capability.
type OCREngine interface {
	// ImageText runs OCR over the image file at path and returns the
	// recognized text.
	ImageText(ctx context.Context, path string) (string, error)
}

// Extractor implements core.Extractor over local attachment copies.
type Extractor struct {
	ocr    OCREngine
	logger *zap.Logger
	dpi    float64
}

// NewExtractor creates an extractor. dpi is the rasterization resolution
// used when a PDF falls back to OCR.
func NewExtractor(ocr OCREngine, logger *zap.Logger, dpi float64) *Extractor {
	if dpi <= 0 {
		dpi = 300
	}
	return &Extractor{
		ocr:    ocr,
		logger: logger,
		dpi:    dpi,
	}
}

// ExtractFile extracts text from the attachment file at path according to
// its category. The result is trimmed; a whitespace-only result is
// normalized to core.SentinelNoText rather than reported as an error.
func (e *Extractor) ExtractFile(ctx context.Context, path string, kind core.AttachmentType) (string, error) {
	var text string
	var err error

	switch kind {
	case core.AttachmentText:
		text, err = extractTextFile(path)
	case core.AttachmentWord:
		text, err = extractWordDocument(path)
	case core.AttachmentPDF:
		text, err = e.extractPDF(ctx, path)
	case core.AttachmentImage:
		text, err = e.ocr.ImageText(ctx, path)
	default:
		return "", core.ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return core.SentinelNoText, nil
	}
	return text, nil
}

// extractTextFile reads a plain-text attachment. Content that is not valid
// UTF-8 is an extraction error.
func extractTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid UTF-8")
	}
	return string(data), nil
}

// extractWordDocument concatenates all paragraph texts in document order.
func extractWordDocument(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open word document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat word document: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse word document: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, p.String())
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// extractPDF concatenates per-page text in page order. When the whole
// document yields only whitespace the PDF is assumed to be scanned or
// image-only and every page is rasterized and run through OCR instead.
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	text, err := extractPDFText(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	e.logger.Info("No text layer found in PDF, falling back to OCR", zap.String("path", path))
	return e.ocrPDF(ctx, path)
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single undecodable page must not hide text on the others.
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// ocrPDF rasterizes every page at the configured resolution and runs OCR
// over each, concatenating output in page order.
func (e *Extractor) ocrPDF(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf for rasterization: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, e.dpi)
		if err != nil {
			return "", fmt.Errorf("failed to rasterize pdf page %d: %w", n, err)
		}

		pageText, err := e.ocrImage(ctx, img, n)
		if err != nil {
			return "", err
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// ocrImage writes a rasterized page to a transient PNG and OCRs it. The
// copy is removed on every exit path.
func (e *Extractor) ocrImage(ctx context.Context, img image.Image, page int) (string, error) {
	tmp, err := os.CreateTemp("", "pdf-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create page image for page %d: %w", page, err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to encode page image for page %d: %w", page, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close page image for page %d: %w", page, err)
	}

	text, err := e.ocr.ImageText(ctx, path)
	if err != nil {
		return "", fmt.Errorf("ocr failed on page %d: %w", page, err)
	}
	return text, nil
}
