package admitcard

import (
	"fmt"

	"github.com/aanand-mishra/exam-portal/internal/types"
)

// Page geometry, in millimetres (A4 portrait).
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	borderMargin  = 10.0
	contentLeft   = 20.0
	contentRight  = 190.0
	valueX        = 75.0
	pageCenter    = PageWidth / 2
	pageTop       = 30.0  // first content line after a page break
	contentBottom = 270.0 // nothing but the footer goes below this
	footerY       = 283.0
)

// Vertical rhythm.
const (
	titleY          = 48.0
	institutionY    = 56.0
	examTitleY      = 66.0
	ruleY           = 70.0
	detailsY        = 80.0
	DetailStep      = 8.0
	sectionGap      = 16.0 // last detail row to the table heading
	tableHeadingGap = 5.0  // table heading to first table row
	RowHeight       = 8.0
	InstructionsGap = 20.0 // table end to instructions heading
	instructionGap  = 10.0 // instructions heading to first instruction
	InstructionStep = 7.0
	signatureGap    = 15.0
)

// Image placement.
const (
	logoX, logoY, logoSize    = 92.0, 20.0, 20.0
	stampX, stampY, stampSize = 150.0, 230.0, 30.0
)

// Section headings.
const (
	StudentInfoHeading  = "STUDENT INFORMATION"
	InstructionsHeading = "IMPORTANT INSTRUCTIONS"
	SignatureLabel      = "STUDENT SIGNATURE:"
)

// Instructions are printed, in order, on every admit card.
var Instructions = []string{
	"1. Arrive 30 minutes early with a valid student ID and admit card.",
	"2. Bring necessary stationery; electronic devices are not allowed unless specified.",
	"3. Follow seating arrangements, write correct details on the answer sheet, and submit it before leaving.",
	"4. No talking, sharing materials, or malpractice; follow the invigilator’s instructions.",
	"5. Any misconduct will lead to disqualification.",
}

var (
	fontTitle       = Font{"helvetica", "B", 22}
	fontInstitution = Font{"helvetica", "B", 18}
	fontExamTitle   = Font{"helvetica", "B", 16}
	fontHeading     = Font{"helvetica", "B", 14}
	fontLabel       = Font{"helvetica", "", 10}
	fontValue       = Font{"helvetica", "B", 10}
	fontFooter      = Font{"helvetica", "", 8}
)

// Layout holds the fixed text of the header and footer.
type Layout struct {
	Organization string // e.g. "ANARC ROBOTICS CLUB"
	Institution  string // e.g. "NIT AGARTALA"
}

// builder accumulates operations and tracks the vertical cursor.
type builder struct {
	layout Layout
	year   int
	doc    *Document
	y      float64
}

// Build lays out one admit card. It is a pure function of its arguments:
// the same record, assets and year always yield the same Document.
func (l Layout) Build(rec types.StudentRecord, assets Assets, year int) *Document {
	b := &builder{
		layout: l,
		year:   year,
		doc: &Document{
			Meta: Metadata{
				Title:    "ANARC Exam Admit Card - " + rec.Name,
				Subject:  "Examination Admit Card",
				Author:   "ANARC - Robotics Club, NIT Agartala",
				Keywords: "admit card, exam, robotics",
				Creator:  "ANARC Exam System",
			},
			Year: year,
		},
	}

	for _, a := range []*Asset{assets.Logo, assets.Stamp} {
		if a != nil {
			b.doc.Images = append(b.doc.Images, *a)
		}
	}

	b.frame()
	b.header(rec, assets.Logo)
	b.details(rec)
	b.studentTable(rec)
	b.instructions()
	b.signature(assets.Stamp)

	return b.doc
}

func (b *builder) add(op Op) {
	b.doc.Ops = append(b.doc.Ops, op)
}

func (b *builder) text(x, y float64, s string, font Font, color Color, align Align) {
	b.add(Text{X: x, Y: y, Text: s, Font: font, Color: color, Align: align})
}

// frame draws the page border and footer. Every page gets one.
func (b *builder) frame() {
	b.add(Rect{
		X:     borderMargin,
		Y:     borderMargin,
		W:     PageWidth - 2*borderMargin,
		H:     PageHeight - 2*borderMargin,
		Width: 0.5,
		Color: colorTeal,
	})
	b.text(pageCenter, footerY,
		fmt.Sprintf("ANARC – ROBOTICS CLUB, NIT AGARTALA | INNOVATE. BUILD. EXCEL. © %d", b.year),
		fontFooter, colorGray, AlignCenter)
}

// ensureSpace breaks the page when h more millimetres would run past the
// content area.
func (b *builder) ensureSpace(h float64) {
	if b.y+h <= contentBottom {
		return
	}
	b.add(PageBreak{})
	b.frame()
	b.y = pageTop
}

func (b *builder) header(rec types.StudentRecord, logo *Asset) {
	if logo != nil {
		b.add(Image{Name: logo.Name, X: logoX, Y: logoY, W: logoSize, H: logoSize})
	}

	b.text(pageCenter, titleY, b.layout.Organization, fontTitle, colorTeal, AlignCenter)
	b.text(pageCenter, institutionY, b.layout.Institution, fontInstitution, colorBlack, AlignCenter)
	b.text(pageCenter, examTitleY, rec.ExamName+" ADMIT CARD", fontExamTitle, colorBlack, AlignCenter)

	b.add(Line{X1: contentLeft, Y1: ruleY, X2: contentRight, Y2: ruleY, Width: 0.5, Color: colorTeal})
}

func (b *builder) details(rec types.StudentRecord) {
	rows := [][2]string{
		{"Registration Number:", RegistrationCode(rec.RegNo)},
		{"Examination:", rec.ExamName},
		{"Date:", rec.ExamDate},
		{"Time:", rec.ExamTime},
		{"Venue:", rec.Venue},
	}

	b.y = detailsY
	for _, row := range rows {
		b.text(contentLeft, b.y, row[0], fontLabel, colorGray, AlignLeft)
		b.text(valueX, b.y, row[1], fontValue, colorBlack, AlignLeft)
		b.y += DetailStep
	}
	// b.y is one step below the last row; the heading sits a gap further.
	b.y += sectionGap - DetailStep
}

func (b *builder) instructions() {
	b.ensureSpace(instructionGap)
	b.text(pageCenter, b.y, InstructionsHeading, fontHeading, colorTeal, AlignCenter)
	b.y += instructionGap

	for _, line := range Instructions {
		b.ensureSpace(0)
		b.text(contentLeft, b.y, line, fontLabel, colorGray, AlignLeft)
		b.y += InstructionStep
	}
}

func (b *builder) signature(stamp *Asset) {
	b.y += signatureGap - InstructionStep
	b.ensureSpace(0)
	b.text(contentLeft, b.y, SignatureLabel, fontLabel, colorBlack, AlignLeft)

	// The stamp sits at a fixed spot on the first page, whatever the
	// signature position.
	if stamp != nil {
		b.insertOnFirstPage(Image{Name: stamp.Name, X: stampX, Y: stampY, W: stampSize, H: stampSize})
	}
}

// insertOnFirstPage inserts op just before the first PageBreak, or
// appends it when the document has a single page.
func (b *builder) insertOnFirstPage(op Op) {
	for i, existing := range b.doc.Ops {
		if _, ok := existing.(PageBreak); ok {
			b.doc.Ops = append(b.doc.Ops[:i], append([]Op{op}, b.doc.Ops[i:]...)...)
			return
		}
	}
	b.add(op)
}
