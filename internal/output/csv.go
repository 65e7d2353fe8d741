package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/maxvaer/dirhunt/internal/classify"
)

var csvHeader = []string{"url", "path", "status", "size", "disposition", "redirect"}

// CSVWriter writes the summary's findings as one table, so rows follow
// --sort. Counts and errors are not part of the table.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSV output writer on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) WriteHeader() error { return nil }

// WriteFinding is a no-op; rows are written from the summary.
func (c *CSVWriter) WriteFinding(*classify.Finding) error { return nil }

func (c *CSVWriter) WriteSummary(s *Summary) error {
	if err := c.w.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range s.Findings {
		err := c.w.Write([]string{
			f.URL,
			f.Path,
			strconv.Itoa(f.StatusCode),
			strconv.FormatInt(f.Size, 10),
			f.Disposition,
			f.RedirectURL,
		})
		if err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}
