package config

import (
	"fmt"
	"testing"
	"time"
)

func validOpts() *Options {
	return &Options{
		URL:     "http://example.test/",
		Threads: 4,
		Timeout: 5 * time.Second,
	}
}

func TestValidateNormalizes(t *testing.T) {
	o := validOpts()
	o.URL = "https://example.test/app///"
	o.Extensions = []string{"php", ".html", "", " ~ "}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.URL != "https://example.test/app" {
		t.Errorf("URL = %q, want trailing slashes stripped", o.URL)
	}
	want := []string{".php", ".html", "~"}
	if fmt.Sprint(o.Extensions) != fmt.Sprint(want) {
		t.Errorf("Extensions = %q, want %q", o.Extensions, want)
	}
	if o.ProgressEvery != 10 {
		t.Errorf("ProgressEvery = %d, want default 10", o.ProgressEvery)
	}
	if o.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", o.UserAgent)
	}
	if len(o.StatusCodes) != len(DefaultStatusCodes) {
		t.Errorf("StatusCodes = %v, want defaults", o.StatusCodes)
	}
	if o.OutputFormat != "text" {
		t.Errorf("OutputFormat = %q, want text", o.OutputFormat)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(o *Options)
		field string
	}{
		{"missing url", func(o *Options) { o.URL = "" }, "url"},
		{"ftp scheme", func(o *Options) { o.URL = "ftp://example.test" }, "url"},
		{"no scheme", func(o *Options) { o.URL = "example.test" }, "url"},
		{"no host", func(o *Options) { o.URL = "http://" }, "url"},
		{"query", func(o *Options) { o.URL = "http://example.test/?a=b" }, "url"},
		{"empty query", func(o *Options) { o.URL = "http://example.test/app?" }, "url"},
		{"fragment", func(o *Options) { o.URL = "http://example.test/#top" }, "url"},
		{"negative max redirects", func(o *Options) { o.MaxRedirects = -1 }, "max-redirects"},
		{"zero threads", func(o *Options) { o.Threads = 0 }, "threads"},
		{"zero timeout", func(o *Options) { o.Timeout = 0 }, "timeout"},
		{"negative delay", func(o *Options) { o.Delay = -time.Second }, "delay"},
		{"negative rate", func(o *Options) { o.Rate = -1 }, "rate"},
		{"negative dedupe", func(o *Options) { o.DuplicateThreshold = -1 }, "dedupe"},
		{"bad status", func(o *Options) { o.StatusCodes = []int{200, 1000} }, "status-codes"},
		{"bad format", func(o *Options) { o.OutputFormat = "xml" }, "format"},
		{"bad sort", func(o *Options) { o.SortBy = "time" }, "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOpts()
			tt.mod(o)
			err := o.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsConfigError(err) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if ce := err.(*Error); ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestValidateKeepsZeroMaxRedirects(t *testing.T) {
	o := validOpts()
	o.FollowRedirects = true
	o.MaxRedirects = 0
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.MaxRedirects != 0 {
		t.Errorf("MaxRedirects = %d, want 0 kept", o.MaxRedirects)
	}
}
