// Package admitcard builds and renders examination admit cards.
//
// Generation happens in two steps. Build lays a StudentRecord out as a
// Document: an ordered list of drawing operations with absolute page
// coordinates in millimetres. Render then replays those operations onto
// a PDF canvas. Keeping the layout as plain data lets callers inspect
// positions (for example where the instructions block starts) without
// parsing PDF bytes.
package admitcard

// Color is an RGB triple, 0-255 per channel.
type Color struct {
	R, G, B int
}

var (
	colorBlack = Color{0, 0, 0}
	colorGray  = Color{100, 100, 100}
	colorTeal  = Color{0, 128, 128}
	colorWhite = Color{255, 255, 255}
	colorBand  = Color{245, 245, 245}
)

// Font selects one of the PDF core fonts.
type Font struct {
	Family string  // "helvetica"
	Style  string  // "" or "B"
	Size   float64 // points
}

// Align is the horizontal anchor of a Text operation.
type Align int

const (
	// AlignLeft draws the text starting at X.
	AlignLeft Align = iota
	// AlignCenter draws the text centred on X.
	AlignCenter
)

// Op is one drawing operation of a Document.
type Op interface {
	isOp()
}

// Text places a single line of text with its baseline at Y.
type Text struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
	Align Align
}

// Line draws a straight stroke.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          Color
}

// Rect draws an unfilled rectangle outline.
type Rect struct {
	X, Y, W, H float64
	Width      float64
	Color      Color
}

// Image places a registered image, scaled to W×H.
type Image struct {
	Name       string
	X, Y, W, H float64
}

// Table is a header row followed by striped body rows. A table that
// crosses a page boundary is split into one Table per page.
type Table struct {
	X, Y      float64
	Widths    []float64
	RowHeight float64
	Head      []string
	Rows      [][]string
	// FirstRow is the index of Rows[0] within the whole table, so striping
	// continues across page splits.
	FirstRow int
}

// EndY is the vertical position just below the last row.
func (t Table) EndY() float64 {
	return t.Y + t.RowHeight*float64(1+len(t.Rows))
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Text) isOp()      {}
func (Line) isOp()      {}
func (Rect) isOp()      {}
func (Image) isOp()     {}
func (Table) isOp()     {}
func (PageBreak) isOp() {}

// Metadata is written into the PDF information dictionary.
type Metadata struct {
	Title    string
	Subject  string
	Author   string
	Keywords string
	Creator  string
}

// Document is a laid-out admit card, ready to Render.
type Document struct {
	Meta Metadata
	// Year is the copyright year printed in the footer. It also fixes the
	// PDF creation date so identical input renders identical bytes.
	Year   int
	Images []Asset
	Ops    []Op
}

// Pages counts the pages the document will occupy.
func (d *Document) Pages() int {
	pages := 1
	for _, op := range d.Ops {
		if _, ok := op.(PageBreak); ok {
			pages++
		}
	}
	return pages
}

// Tables returns every Table operation in drawing order.
func (d *Document) Tables() []Table {
	var tables []Table
	for _, op := range d.Ops {
		if t, ok := op.(Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// FindText returns the first Text operation whose content equals s.
func (d *Document) FindText(s string) (Text, bool) {
	for _, op := range d.Ops {
		if t, ok := op.(Text); ok && t.Text == s {
			return t, true
		}
	}
	return Text{}, false
}
