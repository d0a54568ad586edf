package export

import (
	"encoding/csv"
	"fitu/dashboard/internal/domain"
	"io"
)

// WriteRosterCSV writes the header and one row per student.
func WriteRosterCSV(w io.Writer, students []domain.StudentProfile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range students {
		if err := cw.Write(row(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
