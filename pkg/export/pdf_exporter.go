package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ReportCard holds everything the PDF renderer needs for a single student.
type ReportCard struct {
	SchoolName string
	Student    string
	StudentID  string
	Class      string
	Term       string
	Year       string

	Rows [][]string // subject, class score, exam score, total, grade

	AttendancePresent int
	AttendanceTotal   int
	AttendanceLabel   string
}

var reportCardHeaders = []string{"Subject", "Class", "Exam", "Total", "Grade"}

// PDFExporter renders report cards into printable PDFs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a one-page report card document.
func (e *PDFExporter) Render(card ReportCard) ([]byte, error) {
	if card.StudentID == "" {
		return nil, fmt.Errorf("report card requires a student id")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	title := card.SchoolName
	if title == "" {
		title = "Terminal Report"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Student: %s (%s)", card.Student, card.StudentID), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Class: %s    %s %s", card.Class, card.Term, card.Year), "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(reportCardHeaders))
	for _, header := range reportCardHeaders {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range card.Rows {
		for i := range reportCardHeaders {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if card.AttendanceTotal > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Attendance: %d of %d days (%s)",
			card.AttendancePresent, card.AttendanceTotal, card.AttendanceLabel), "", 1, "", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
