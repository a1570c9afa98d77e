package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
)

type fakeOCR struct {
	text  string
	err   error
	calls int
	paths []string
}

func (o *fakeOCR) ImageText(_ context.Context, path string) (string, error) {
	o.calls++
	o.paths = append(o.paths, path)
	if o.err != nil {
		return "", o.err
	}
	return o.text, nil
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtractTextFile(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, zap.NewNop(), 0)

	t.Run("valid UTF-8", func(t *testing.T) {
		path := writeFile(t, "notes.txt", []byte("  hello world\n"))
		text, err := e.ExtractFile(context.Background(), path, core.AttachmentText)
		require.NoError(t, err)
		assert.Equal(t, "hello world", text)
	})

	t.Run("invalid UTF-8 is an error", func(t *testing.T) {
		path := writeFile(t, "binary.txt", []byte{0xff, 0xfe, 0xfd})
		_, err := e.ExtractFile(context.Background(), path, core.AttachmentText)
		assert.Error(t, err)
	})

	t.Run("whitespace-only normalizes to sentinel", func(t *testing.T) {
		path := writeFile(t, "blank.txt", []byte("   \n\t  "))
		text, err := e.ExtractFile(context.Background(), path, core.AttachmentText)
		require.NoError(t, err)
		assert.Equal(t, core.SentinelNoText, text)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := e.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), core.AttachmentText)
		assert.Error(t, err)
	})
}

func TestExtractImageUsesOCR(t *testing.T) {
	ocr := &fakeOCR{text: "recognized text"}
	e := NewExtractor(ocr, zap.NewNop(), 0)

	path := writeFile(t, "scan.png", []byte("not a real png, never decoded here"))
	text, err := e.ExtractFile(context.Background(), path, core.AttachmentImage)
	require.NoError(t, err)
	assert.Equal(t, "recognized text", text)
	require.Equal(t, 1, ocr.calls)
	assert.Equal(t, path, ocr.paths[0])
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, zap.NewNop(), 0)

	path := writeFile(t, "archive.zip", []byte("zip"))
	_, err := e.ExtractFile(context.Background(), path, core.AttachmentOther)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)

	_, err = e.ExtractFile(context.Background(), path, core.AttachmentNone)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

// blankPDF builds a minimal valid one-page PDF with an empty content
// stream, the shape of a scanned document whose text layer is missing.
func blankPDF(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	object := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	object("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	object("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	object("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>\nendobj\n")
	object("4 0 obj\n<< /Length 0 >>\nstream\n\nendstream\nendobj\n")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	ocr := &fakeOCR{text: "scanned words"}
	e := NewExtractor(ocr, zap.NewNop(), 0)

	path := blankPDF(t)
	text, err := e.ExtractFile(context.Background(), path, core.AttachmentPDF)
	require.NoError(t, err)
	assert.Equal(t, "scanned words", text)

	// One page rasterized, one OCR invocation, over a transient PNG copy
	// rather than the PDF itself.
	require.Equal(t, 1, ocr.calls)
	assert.True(t, strings.HasSuffix(ocr.paths[0], ".png"))
	assert.NotEqual(t, path, ocr.paths[0])
}

func TestExtractPDFFallbackOCRFailure(t *testing.T) {
	ocr := &fakeOCR{err: context.DeadlineExceeded}
	e := NewExtractor(ocr, zap.NewNop(), 0)

	_, err := e.ExtractFile(context.Background(), blankPDF(t), core.AttachmentPDF)
	assert.Error(t, err)
}

func TestExtractCorruptDocuments(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, zap.NewNop(), 0)

	t.Run("corrupt word document", func(t *testing.T) {
		path := writeFile(t, "broken.docx", []byte("not a zip archive"))
		_, err := e.ExtractFile(context.Background(), path, core.AttachmentWord)
		assert.Error(t, err)
	})

	t.Run("corrupt pdf", func(t *testing.T) {
		path := writeFile(t, "broken.pdf", []byte("not a pdf"))
		_, err := e.ExtractFile(context.Background(), path, core.AttachmentPDF)
		assert.Error(t, err)
	})
}
