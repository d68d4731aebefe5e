package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"4", slog.Level(4), false},
		{"verbose", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseLogLevel(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSelectedLogLevel(t *testing.T) {
	cases := []struct {
		name       string
		flag       string
		env        string
		config     string
		wantLevel  string
		wantSource string
	}{
		{"flag wins", "debug", "info", "warn", "debug", "flag"},
		{"env next", "", "info", "warn", "info", "env"},
		{"config last", "", "", "warn", "warn", "config"},
		{"default", "", "", "", "", "default"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, source := selectedLogLevel(tc.flag, tc.env, tc.config)
			if level != tc.wantLevel || source != tc.wantSource {
				t.Errorf("selectedLogLevel = (%q, %q), want (%q, %q)", level, source, tc.wantLevel, tc.wantSource)
			}
		})
	}
}
