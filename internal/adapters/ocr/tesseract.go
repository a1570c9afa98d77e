// Package ocr wraps the external tesseract binary as an OCR capability.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Tesseract runs the tesseract binary over image files. The binary path is
// injected at construction rather than read from a process-wide default.
type Tesseract struct {
	binary   string
	language string
	logger   *zap.Logger
}

// NewTesseract creates a tesseract-backed OCR engine.
func NewTesseract(binary, language string, logger *zap.Logger) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &Tesseract{
		binary:   binary,
		language: language,
		logger:   logger,
	}
}

// ImageText runs OCR over the image file at path and returns the
// recognized text.
func (t *Tesseract) ImageText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, t.binary, path, "stdout", "-l", t.language)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	text := strings.TrimSpace(stdout.String())
	t.logger.Debug("OCR completed",
		zap.String("image", path),
		zap.Int("text_size", len(text)))
	return text, nil
}
