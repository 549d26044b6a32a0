package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is the declared file format of an uploaded resume.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Supported reports whether the format belongs to the supported set.
func (f Format) Supported() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatJPG, FormatJPEG, FormatPNG:
		return true
	default:
		return false
	}
}

// IsImage reports whether the format is processed through OCR.
func (f Format) IsImage() bool {
	switch f {
	case FormatJPG, FormatJPEG, FormatPNG:
		return true
	default:
		return false
	}
}

// FormatFromFileName derives the declared format from the file extension.
func FormatFromFileName(name string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	f := Format(ext)
	return f, f.Supported()
}

// Config holds extractor settings for the OCR path.
type Config struct {
	TesseractPath string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TempDir       string // scratch dir for OCR inputs; if empty -> os temp
}

// Extractor converts uploaded file bytes into plain text.
// Libraries used: github.com/ledongthuc/pdf (PDF), github.com/nguyenthenguyen/docx
// (DOCX) and the tesseract binary (images).
type Extractor struct {
	cfg    Config
	runner Runner
}

// NewExtractor constructs an Extractor with defaults filled in.
func NewExtractor(cfg Config) *Extractor {
	if cfg.TesseractPath == "" {
		cfg.TesseractPath = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// Extract pulls plain text from the payload according to the declared format.
func (e *Extractor) Extract(ctx context.Context, data []byte, format Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case format == FormatPDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", &ExtractionError{Format: format, Err: err}
		}
		return text, nil
	case format == FormatDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", &ExtractionError{Format: format, Err: err}
		}
		return text, nil
	case format.IsImage():
		text, err := e.extractImage(ctx, data, format)
		if err != nil {
			return "", &ExtractionError{Format: format, Err: err}
		}
		return text, nil
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Pages with no extractable text contribute an empty segment.
		text, _ := page.GetPlainText(nil)
		if i > 1 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocumentXML(doc.Editable().GetContent()), nil
}

// stripDocumentXML reduces WordprocessingML to paragraph text joined by newlines.
func stripDocumentXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
