package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"interview-prep-agent/internal/models"
)

// TextExtractor converts an uploaded document into plain text: one unit of
// text per page (PDF) or paragraph (DOCX), each followed by a newline, in
// source order. A document with no extractable text yields an empty string,
// not an error; callers decide whether an empty result is usable.
type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func (t *textExtractor) ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".pdf":
		return extractPDF(filePath)
	case ".docx":
		return extractDocx(filePath)
	default:
		return "", models.Errf(models.KindUnsupportedFormat,
			"unsupported file format: %q (only PDF and DOCX allowed)", ext)
	}
}

func extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page without extractable text (scanned image) is skipped,
			// not fatal.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractDocx(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	return docxParagraphText(r.Editable().GetContent())
}

// docxParagraphText walks the word/document.xml content and collects the text
// runs (w:t) of each paragraph (w:p), appending a newline per paragraph.
func docxParagraphText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var textBuilder strings.Builder
	var paragraph strings.Builder
	inParagraph := false
	inText := false

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("failed to parse DOCX content: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inParagraph = true
				paragraph.Reset()
			case "t":
				inText = inParagraph
			}
		case xml.CharData:
			if inText {
				paragraph.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					textBuilder.WriteString(paragraph.String())
					textBuilder.WriteString("\n")
				}
				inParagraph = false
			}
		}
	}

	return textBuilder.String(), nil
}
