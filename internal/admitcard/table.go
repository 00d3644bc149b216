package admitcard

import (
	"strings"

	"github.com/aanand-mishra/exam-portal/internal/types"
)

// Column widths of the student information table. Together they span
// the content area.
var tableWidths = []float64{40, contentRight - contentLeft - 40}

var tableHead = []string{"Field", "Details"}

// field is one optional (label, value) pair.
type field struct {
	label string
	value string
}

// present reports whether an optional value should produce a row. Empty
// and whitespace-only strings both count as absent.
func present(value string) bool {
	return strings.TrimSpace(value) != ""
}

// StudentRows returns the body rows of the student information table.
// Name and Email are always present; Roll Number, Department, Semester
// and Phone appear only when set, in that order.
func StudentRows(rec types.StudentRecord) [][]string {
	rows := [][]string{
		{"Name", rec.Name},
		{"Email", rec.Email},
	}

	optional := []field{
		{"Roll Number", rec.RollNumber},
		{"Department", rec.Department},
		{"Semester", rec.Semester},
		{"Phone", rec.Phone},
	}
	for _, f := range optional {
		if present(f.value) {
			rows = append(rows, []string{f.label, f.value})
		}
	}

	return rows
}

// studentTable emits the section heading and the table, splitting it
// across pages when needed. The cursor ends a gap below the table's
// measured bottom edge, which is where the instructions start.
func (b *builder) studentTable(rec types.StudentRecord) {
	b.ensureSpace(tableHeadingGap + 2*RowHeight)
	b.text(pageCenter, b.y, StudentInfoHeading, fontHeading, colorTeal, AlignCenter)
	b.y += tableHeadingGap

	rows := StudentRows(rec)
	first := 0
	for {
		// Header plus at least one body row must fit on the page.
		b.ensureSpace(2 * RowHeight)

		fit := int((contentBottom-b.y)/RowHeight) - 1
		end := min(first+fit, len(rows))

		t := Table{
			X:         contentLeft,
			Y:         b.y,
			Widths:    tableWidths,
			RowHeight: RowHeight,
			Head:      tableHead,
			Rows:      rows[first:end],
			FirstRow:  first,
		}
		b.add(t)
		b.y = t.EndY()

		if end == len(rows) {
			break
		}
		first = end
		b.add(PageBreak{})
		b.frame()
		b.y = pageTop
	}

	b.y += InstructionsGap
}
