package nb2docx

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-nb2docx/internal/assets"
	"github.com/alnah/go-nb2docx/internal/docx"
	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// outputPerm is the mode of written documents.
const outputPerm = 0o644

// newDocument starts a document with the title heading.
func (c *Converter) newDocument() *docx.Document {
	doc := docx.New()
	doc.Title = DocumentHeading
	doc.Created = c.now()
	doc.AddHeading(DocumentHeading, 1)
	return doc
}

// addPicture appends a picture, mapping width errors to the config sentinel.
func addPicture(doc *docx.Document, data []byte, widthInches float64) error {
	err := doc.AddPicture(data, widthInches)
	if errors.Is(err, docx.ErrInvalidWidth) {
		return fmt.Errorf("%w: %v", ErrInvalidImageWidth, err)
	}
	return err
}

// save serializes doc once and replaces outputPath atomically.
func (c *Converter) save(ctx context.Context, doc *docx.Document, format Format, outputPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		pdf, err := c.renderPDF(ctx, doc)
		if err != nil {
			return nil, err
		}
		data = pdf
	default:
		b, err := doc.Bytes()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentWrite, err)
		}
		data = b
	}

	if err := fileutil.WriteFileAtomic(outputPath, data, outputPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentWrite, err)
	}
	return newResult(outputPath, format, doc), nil
}

func newResult(outputPath string, format Format, doc *docx.Document) *Result {
	blocks := doc.Blocks()
	res := &Result{
		OutputPath: outputPath,
		Format:     format,
		Images:     doc.Pictures(),
		Blocks:     make([]Block, len(blocks)),
	}
	for i, b := range blocks {
		res.Blocks[i] = Block{Kind: string(b.Kind), Text: b.Text}
	}
	return res
}

// ---------------------------------------------------------------------------
// PDF output
// ---------------------------------------------------------------------------

// htmlBlock is the template view of a docx.Block.
type htmlBlock struct {
	Kind        string
	Text        string
	Level       int
	Source      template.URL
	WidthInches float64
}

type htmlPage struct {
	Title  string
	Blocks []htmlBlock
}

// renderPDF prints doc through the HTML page template.
func (c *Converter) renderPDF(ctx context.Context, doc *docx.Document) ([]byte, error) {
	page, err := buildHTML(doc)
	if err != nil {
		return nil, err
	}
	pdf, err := c.pdf.ToPDF(ctx, page, pdfPage())
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

// pdfPage returns the DOCX page geometry so both formats lay out alike.
func pdfPage() *pdfOptions {
	return &pdfOptions{
		PaperWidth:  docx.PageWidthInches,
		PaperHeight: docx.PageHeightInches,
		Margin:      docx.MarginInches,
	}
}

// buildHTML renders the document blocks into a standalone HTML page.
// Pictures are inlined as data URLs so the page has no external references.
func buildHTML(doc *docx.Document) (string, error) {
	src, err := assets.LoadTemplate(assets.TemplateDocument)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentWrite, err)
	}
	tmpl, err := template.New(assets.TemplateDocument).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parsing page template: %v", ErrDocumentWrite, err)
	}

	view := htmlPage{Title: doc.Title}
	for _, b := range doc.Blocks() {
		hb := htmlBlock{Kind: string(b.Kind), Text: b.Text, Level: b.Level}
		if b.Picture != nil {
			// #nosec G203 -- data URL built from decoded image bytes
			hb.Source = template.URL("data:image/" + b.Picture.Format + ";base64," +
				base64.StdEncoding.EncodeToString(b.Picture.Data))
			hb.WidthInches = b.Picture.WidthInches
		}
		view.Blocks = append(view.Blocks, hb)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: rendering page: %v", ErrDocumentWrite, err)
	}
	return buf.String(), nil
}
