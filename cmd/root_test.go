package cmd

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/maxvaer/dirhunt/internal/config"
	"github.com/spf13/pflag"
)

func TestIntSliceValue(t *testing.T) {
	var codes []int
	v := &intSliceValue{target: &codes}
	if err := v.Set("200, 403,,301"); err != nil {
		t.Fatal(err)
	}
	if err := v.Set("500"); err != nil {
		t.Fatal(err)
	}
	if want := []int{200, 403, 301, 500}; !reflect.DeepEqual(codes, want) {
		t.Errorf("codes = %v, want %v", codes, want)
	}
	if v.String() != "200,403,301,500" {
		t.Errorf("String() = %q", v.String())
	}
	if err := v.Set("abc"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestParseHeaders(t *testing.T) {
	h, err := parseHeaders([]string{"X-Token: abc:def", "Accept:  */*  "})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"X-Token": "abc:def", "Accept": "*/*"}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("headers = %v, want %v", h, want)
	}

	for _, bad := range []string{"NoColon", ": value"} {
		if _, err := parseHeaders([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestNormalizeTarget(t *testing.T) {
	tests := map[string]string{
		"example.com":          "http://example.com",
		"example.com:8080/app": "http://example.com:8080/app",
		"https://example.com":  "https://example.com",
		"ftp://example.com":    "ftp://example.com",
	}
	for in, want := range tests {
		if got := normalizeTarget(in); got != want {
			t.Errorf("normalizeTarget(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusCodesDefaultShown(t *testing.T) {
	f := rootCmd.Flags().Lookup("status-codes")
	if f == nil {
		t.Fatal("status-codes flag missing")
	}
	if !strings.Contains(formatFlag(f), "(default 200,204,301,302,307,401,403)") {
		t.Errorf("unexpected help line %q", formatFlag(f))
	}
	if f.DefValue != joinInts(config.DefaultStatusCodes) {
		t.Errorf("DefValue = %q", f.DefValue)
	}
}

func TestEveryFlagHasHelpGroup(t *testing.T) {
	grouped := make(map[string]bool)
	for _, g := range helpGroups {
		for _, name := range g.flags {
			grouped[name] = true
		}
	}
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" || f.Name == "version" {
			return
		}
		if !grouped[f.Name] {
			t.Errorf("flag --%s is missing from the help groups", f.Name)
		}
	})
}

func TestPrintHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetErr(&buf)
	defer rootCmd.SetErr(nil)

	printHelp(rootCmd, nil)
	out := buf.String()
	for _, want := range []string{"Usage:", "RATE-LIMIT:", "--rate float", "-t, --threads int", "(default 25)"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestSecondsValue(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10", 10 * time.Second},
		{"2.5", 2500 * time.Millisecond},
		{"1m", time.Minute},
		{"750ms", 750 * time.Millisecond},
	}
	for _, tt := range tests {
		var d time.Duration
		if err := (*secondsValue)(&d).Set(tt.in); err != nil {
			t.Fatalf("Set(%q): %v", tt.in, err)
		}
		if d != tt.want {
			t.Errorf("Set(%q) = %v, want %v", tt.in, d, tt.want)
		}
	}

	var d time.Duration
	if err := (*secondsValue)(&d).Set("soon"); err == nil {
		t.Error("expected error for invalid timeout")
	}
}
