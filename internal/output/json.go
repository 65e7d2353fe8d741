package output

import (
	"encoding/json"
	"io"

	"github.com/maxvaer/dirhunt/internal/classify"
)

type jsonFinding struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	StatusCode  int    `json:"status"`
	Size        int64  `json:"size"`
	Disposition string `json:"disposition"`
	RedirectURL string `json:"redirect,omitempty"`
}

type jsonError struct {
	URL   string `json:"url"`
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	Target         string         `json:"target"`
	Total          int            `json:"total"`
	Issued         int            `json:"issued"`
	Found          int            `json:"found"`
	Errored        int            `json:"errored"`
	Filtered       int            `json:"filtered"`
	Suppressed     map[string]int `json:"suppressed,omitempty"`
	DurationMS     int64          `json:"duration_ms"`
	RequestsPerSec float64        `json:"requests_per_sec"`
	Interrupted    bool           `json:"interrupted,omitempty"`
	Findings       []jsonFinding  `json:"findings"`
	Errors         []jsonError    `json:"errors"`
	ErrorsOmitted  int            `json:"errors_omitted,omitempty"`
}

// JSONWriter writes the summary as one JSON document.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a JSON output writer on w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (j *JSONWriter) WriteHeader() error { return nil }

// WriteFinding is a no-op; findings are part of the summary document.
func (j *JSONWriter) WriteFinding(*classify.Finding) error { return nil }

func (j *JSONWriter) WriteSummary(s *Summary) error {
	shown, rest := s.ErrorsShown()
	rep := jsonReport{
		Target:         s.Target,
		Total:          s.Total,
		Issued:         s.Issued,
		Found:          s.Found,
		Errored:        s.Errored,
		Filtered:       s.Filtered,
		Suppressed:     s.Suppressed,
		DurationMS:     s.Duration.Milliseconds(),
		RequestsPerSec: s.RequestsPerSec,
		Interrupted:    s.Interrupted,
		Findings:       make([]jsonFinding, 0, len(s.Findings)),
		Errors:         make([]jsonError, 0, len(shown)),
		ErrorsOmitted:  rest,
	}
	for _, f := range s.Findings {
		rep.Findings = append(rep.Findings, jsonFinding{
			URL:         f.URL,
			Path:        f.Path,
			StatusCode:  f.StatusCode,
			Size:        f.Size,
			Disposition: f.Disposition,
			RedirectURL: f.RedirectURL,
		})
	}
	for _, e := range shown {
		rep.Errors = append(rep.Errors, jsonError{URL: e.URL, Path: e.Path, Kind: string(e.Kind), Error: e.Err})
	}

	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func (j *JSONWriter) Close() error { return nil }
