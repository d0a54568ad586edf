// Package export renders a roster as a downloadable file.
package export

import (
	"fitu/dashboard/internal/domain"
	"fmt"
	"io"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Header is the column row of every roster export.
var Header = []string{"Name", "Email", "Year Level", "Course", "Status"}

// ParseFormat maps a query value to a Format. Empty means CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", value)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension of f without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Write renders students in format f.
func Write(w io.Writer, f Format, students []domain.StudentProfile) error {
	if f == FormatXLSX {
		return WriteRosterXLSX(w, students)
	}
	return WriteRosterCSV(w, students)
}

// row returns the export cells of one student. Blank fields other than
// email read "Not Set".
func row(p domain.StudentProfile) []string {
	return []string{
		orNotSet(p.Name),
		p.Email,
		orNotSet(p.YearLevel),
		orNotSet(p.Course),
		orNotSet(string(p.Status)),
	}
}

func orNotSet(v string) string {
	if v == "" {
		return domain.NotSet
	}
	return v
}
