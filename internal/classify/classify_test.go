package classify

import (
	"testing"

	"github.com/maxvaer/dirhunt/internal/scanner"
)

func TestDisposition(t *testing.T) {
	tests := []struct {
		status   int
		location string
		want     string
	}{
		{200, "", "OK"},
		{301, "/x", "REDIRECT -> /x"},
		{302, "http://example.test/login/", "REDIRECT -> http://example.test/login/"},
		{301, "", "REDIRECT"},
		{403, "", "FORBIDDEN"},
		{401, "", "UNAUTHORIZED"},
		{204, "", "204"},
		{307, "/elsewhere", "307"},
		{500, "", "500"},
	}
	for _, tt := range tests {
		if got := Disposition(tt.status, tt.location); got != tt.want {
			t.Errorf("Disposition(%d, %q) = %q, want %q", tt.status, tt.location, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	c := New([]int{200, 301, 403})
	cand := scanner.Candidate{Index: 3, Path: "admin"}

	tests := []struct {
		name   string
		result scanner.ProbeResult
		want   string // disposition, "" = nil finding
	}{
		{"ok", scanner.ProbeResult{StatusCode: 200, Size: 12}, "OK"},
		{"redirect", scanner.ProbeResult{StatusCode: 301, Headers: map[string]string{"Location": "/x"}}, "REDIRECT -> /x"},
		{"forbidden", scanner.ProbeResult{StatusCode: 403}, "FORBIDDEN"},
		{"not interesting", scanner.ProbeResult{StatusCode: 404}, ""},
		{"401 not in set", scanner.ProbeResult{StatusCode: 401}, ""},
		{"transport error", scanner.ProbeResult{Err: &scanner.ProbeError{Kind: scanner.ErrTimeout}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.result.URL = "http://example.test/admin"
			f := c.Classify(cand, &tt.result)
			if tt.want == "" {
				if f != nil {
					t.Fatalf("expected nil finding, got %+v", f)
				}
				return
			}
			if f == nil {
				t.Fatal("expected finding")
			}
			if f.Disposition != tt.want {
				t.Errorf("Disposition = %q, want %q", f.Disposition, tt.want)
			}
			if f.Path != "admin" || f.URL != "http://example.test/admin" || f.StatusCode != tt.result.StatusCode {
				t.Errorf("unexpected finding %+v", f)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := New([]int{301})
	r := scanner.ProbeResult{URL: "http://example.test/x", StatusCode: 301, Size: 5, Headers: map[string]string{"Location": "/x"}}
	cand := scanner.Candidate{Path: "x"}

	first := c.Classify(cand, &r)
	second := c.Classify(cand, &r)
	if first == nil || second == nil {
		t.Fatal("expected findings")
	}
	if *first != *second {
		t.Errorf("same input gave %+v and %+v", first, second)
	}
	if first == second {
		t.Error("each call should create its own finding")
	}
	if first.RedirectURL != "/x" {
		t.Errorf("RedirectURL = %q, want /x", first.RedirectURL)
	}
}
