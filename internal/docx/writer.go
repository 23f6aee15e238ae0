package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	gdocx "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"

	"github.com/alnah/go-nb2docx/internal/assets"
	"github.com/alnah/go-nb2docx/internal/fileutil"
)

// Package part names.
const (
	partCore     = "docProps/core.xml"
	partDocument = "word/document.xml"
	partStyles   = "word/styles.xml"
	mediaDir     = "word/media/"
)

// creator is written to docProps/core.xml.
const creator = "go-nb2docx"

// Bytes serializes the document into a .docx package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the document into a .docx package written to w.
// Pictures are staged as temporary files for the duration of the call.
func (d *Document) Write(w io.Writer) error {
	rd, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("%w: opening base package: %v", ErrWrite, err)
	}
	defer func() { _ = rd.Close() }()

	styles, err := assets.LoadPart(assets.PartStyles)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if rd.DocStyles, err = gdocx.LoadStyles(partStyles, styles); err != nil {
		return fmt.Errorf("%w: styles: %v", ErrWrite, err)
	}
	rd.Document.Body.SectPr = sectionProps()

	cleanup, err := d.fill(rd)
	defer cleanup()
	if err != nil {
		return err
	}

	rd.ContentType.Default = uniqueDefaults(rd.ContentType.Default)

	core, err := marshalXML(d.coreProperties())
	if err != nil {
		return err
	}
	rd.FileMap.Store(partCore, core)

	if err := rd.Write(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// fill appends the blocks to the package body. The returned cleanup removes
// staged picture files and is safe to call on error.
func (d *Document) fill(rd *gdocx.RootDoc) (func(), error) {
	var staged []func()
	cleanup := func() {
		for _, rm := range staged {
			rm()
		}
	}

	for _, b := range d.blocks {
		switch b.Kind {
		case BlockHeading:
			if _, err := rd.AddHeading(b.Text, uint(b.Level)); err != nil {
				return cleanup, fmt.Errorf("%w: heading: %v", ErrWrite, err)
			}
		case BlockParagraph:
			if b.Text == "" {
				rd.AddEmptyParagraph()
			} else {
				rd.AddParagraph(b.Text)
			}
		case BlockImage:
			path, rm, err := fileutil.WriteTempFile(string(b.Picture.Data), b.Picture.Extension())
			if err != nil {
				return cleanup, fmt.Errorf("%w: staging picture: %v", ErrWrite, err)
			}
			staged = append(staged, rm)
			width, height := units.Inch(b.Picture.WidthInches), units.Inch(b.Picture.HeightInches())
			if _, err := rd.AddPicture(path, width, height); err != nil {
				return cleanup, fmt.Errorf("%w: picture: %v", ErrWrite, err)
			}
		}
	}
	return cleanup, nil
}

// uniqueDefaults keeps the first content type registered for each extension.
// A package may declare an extension only once.
func uniqueDefaults(defaults []gdocx.Default) []gdocx.Default {
	seen := make(map[string]bool, len(defaults))
	out := defaults[:0]
	for _, d := range defaults {
		ext := strings.ToLower(d.Extension)
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, d)
	}
	return out
}

// sectionProps fixes the page size and margins shared with PDF output.
func sectionProps() *ctypes.SectionProp {
	width, height := uint64(twips(PageWidthInches)), uint64(twips(PageHeightInches))
	margin, header, gutter := twips(MarginInches), headerTwips, 0
	return &ctypes.SectionProp{
		PageSize: &ctypes.PageSize{Width: &width, Height: &height},
		PageMargin: &ctypes.PageMargin{
			Top:    &margin,
			Right:  &margin,
			Bottom: &margin,
			Left:   &margin,
			Header: &header,
			Footer: &header,
			Gutter: &gutter,
		},
	}
}

// twips converts inches to the twentieths of a point used by w:pgSz and w:pgMar.
func twips(inches float64) int {
	return int(math.Round(inches * twipsPerInch))
}

func (d *Document) coreProperties() *corePropertiesXML {
	core := &corePropertiesXML{
		CP:      nsCP,
		DC:      nsDC,
		DCTerms: nsDCTerms,
		XSI:     nsXSI,
		Title:   d.Title,
		Creator: creator,
	}
	if !d.Created.IsZero() {
		core.Created = &createdXML{
			Type:  "dcterms:W3CDTF",
			Value: d.Created.UTC().Format(time.RFC3339),
		}
	}
	return core
}

func marshalXML(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return append([]byte(xml.Header), data...), nil
}
