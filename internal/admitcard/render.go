package admitcard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedText is returned for text the PDF core fonts cannot show.
var ErrUnsupportedText = errors.New("text contains characters outside Windows-1252")

// cellPadding is the horizontal inset of table cell text.
const cellPadding = 2.0

// Render writes doc as a PDF to w. The output depends only on doc: the
// creation date is pinned to January 1st of doc.Year and the catalogue is
// sorted, so equal documents produce byte-identical files.
//
// Core fonts only cover Windows-1252. Text with other characters, such as
// a name in Devanagari, fails with ErrUnsupportedText instead of being
// printed as dots.
func Render(w io.Writer, doc *Document) error {
	if err := checkEncodable(doc); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)

	stamp := time.Date(doc.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)

	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetSubject(doc.Meta.Subject, true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetKeywords(doc.Meta.Keywords, true)
	pdf.SetCreator(doc.Meta.Creator, true)

	// Core fonts are cp1252; this maps characters such as "©" and "’".
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	imageTypes := make(map[string]string, len(doc.Images))
	for _, img := range doc.Images {
		pdf.RegisterImageOptionsReader(img.Name, fpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
		imageTypes[img.Name] = img.Type
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("admitcard: register images: %w", err)
	}

	pdf.AddPage()

	for _, op := range doc.Ops {
		switch op := op.(type) {
		case Text:
			setFont(pdf, op.Font)
			pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
			s := tr(op.Text)
			x := op.X
			if op.Align == AlignCenter {
				x -= pdf.GetStringWidth(s) / 2
			}
			pdf.Text(x, op.Y, s)

		case Line:
			pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.SetLineWidth(op.Width)
			pdf.Line(op.X1, op.Y1, op.X2, op.Y2)

		case Rect:
			pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.SetLineWidth(op.Width)
			pdf.Rect(op.X, op.Y, op.W, op.H, "D")

		case Image:
			typ, ok := imageTypes[op.Name]
			if !ok {
				return fmt.Errorf("admitcard: image %q is not registered", op.Name)
			}
			pdf.ImageOptions(op.Name, op.X, op.Y, op.W, op.H, false,
				fpdf.ImageOptions{ImageType: typ}, 0, "")

		case Table:
			renderTable(pdf, tr, op)

		case PageBreak:
			pdf.AddPage()

		default:
			return fmt.Errorf("admitcard: unknown operation %T", op)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("admitcard: render: %w", err)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("admitcard: write pdf: %w", err)
	}

	return nil
}

// checkEncodable rejects any drawn string the cp1252 translator would
// replace.
func checkEncodable(doc *Document) error {
	for _, op := range doc.Ops {
		switch op := op.(type) {
		case Text:
			if err := encodable(op.Text); err != nil {
				return err
			}
		case Table:
			for _, cell := range op.Head {
				if err := encodable(cell); err != nil {
					return err
				}
			}
			for _, row := range op.Rows {
				for _, cell := range row {
					if err := encodable(cell); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func encodable(s string) error {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return fmt.Errorf("admitcard: %q: %w", s, ErrUnsupportedText)
		}
	}
	return nil
}

func setFont(pdf *fpdf.Fpdf, f Font) {
	pdf.SetFont(f.Family, f.Style, f.Size)
}

// renderTable draws a teal header row and striped body rows. The first
// column is bold.
func renderTable(pdf *fpdf.Fpdf, tr func(string) string, t Table) {
	pdf.SetCellMargin(cellPadding)

	pdf.SetFillColor(colorTeal.R, colorTeal.G, colorTeal.B)
	pdf.SetTextColor(colorWhite.R, colorWhite.G, colorWhite.B)
	setFont(pdf, fontValue)
	pdf.SetXY(t.X, t.Y)
	for i, head := range t.Head {
		pdf.CellFormat(t.Widths[i], t.RowHeight, tr(head), "", 0, "L", true, 0, "")
	}

	pdf.SetTextColor(colorBlack.R, colorBlack.G, colorBlack.B)
	for r, row := range t.Rows {
		y := t.Y + t.RowHeight*float64(r+1)

		// Every other row is shaded, counted over the whole table.
		fill := (t.FirstRow+r)%2 == 1
		pdf.SetFillColor(colorBand.R, colorBand.G, colorBand.B)

		pdf.SetXY(t.X, y)
		for c, cell := range row {
			if c == 0 {
				setFont(pdf, fontValue)
			} else {
				setFont(pdf, fontLabel)
			}
			pdf.CellFormat(t.Widths[c], t.RowHeight, tr(cell), "", 0, "L", fill, 0, "")
		}
	}
}
