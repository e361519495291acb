package services

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

// PageRenderer turns the first page of a PDF into a JPEG. Rendering is
// delegated to an external tool (poppler's pdftoppm in production) so
// the extractor itself stays free of system dependencies.
type PageRenderer interface {
	RenderFirstPage(ctx context.Context, data []byte) ([]byte, error)
}

type DocumentExtractor interface {
	ExtractText(data []byte) (string, error)
	ExtractFirstPageImage(ctx context.Context, data []byte) (*models.PageImage, error)
}

type documentExtractor struct {
	renderer PageRenderer
}

func NewDocumentExtractor(renderer PageRenderer) DocumentExtractor {
	return &documentExtractor{renderer: renderer}
}

// ExtractText returns the concatenated plain text of every page. The
// upload is read entirely in memory; nothing is written to disk.
func (e *documentExtractor) ExtractText(data []byte) (string, error) {
	r, err := validatePDF(data)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that cannot be decoded is skipped; the document
			// only fails below when no page yields text.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return "", models.NewExtractionError("no text content found in PDF", nil)
	}

	return text, nil
}

// ExtractFirstPageImage validates the upload and renders page one as a
// JPEG for multimodal model input.
func (e *documentExtractor) ExtractFirstPageImage(ctx context.Context, data []byte) (*models.PageImage, error) {
	if _, err := validatePDF(data); err != nil {
		return nil, err
	}

	if e.renderer == nil {
		return nil, models.NewExtractionError("page rendering is not available", nil)
	}

	img, err := e.renderer.RenderFirstPage(ctx, data)
	if err != nil {
		return nil, models.NewExtractionError("failed to render first page", err)
	}
	if len(img) == 0 {
		return nil, models.NewExtractionError("renderer produced no image data", nil)
	}

	return &models.PageImage{MIMEType: "image/jpeg", Data: img}, nil
}

// validatePDF parses the uploaded bytes and checks the structural
// requirements shared by both extraction paths: a syntactically valid
// PDF with at least one page.
func validatePDF(data []byte) (*pdf.Reader, error) {
	if len(data) == 0 {
		return nil, models.NewExtractionError("uploaded file is empty", nil)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, models.NewExtractionError("failed to parse PDF", err)
	}

	if r.NumPage() < 1 {
		return nil, models.NewExtractionError("PDF has no pages", nil)
	}

	return r, nil
}

// CleanText trims and collapses blank lines left behind by PDF text
// extraction.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
