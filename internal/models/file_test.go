package models

import "testing"

func TestDerivePreviewKind(t *testing.T) {
	cases := []struct {
		mediaType string
		want      PreviewKind
	}{
		{"image/jpeg", PreviewImage},
		{"image/png", PreviewImage},
		{"video/mp4", PreviewVideo},
		{"audio/mpeg", PreviewAudio},
		{"application/pdf", PreviewDocument},
		{"text/plain", PreviewDocument},
		{"", PreviewDocument},
		{"IMAGE/GIF", PreviewImage},
	}

	for _, tc := range cases {
		if got := DerivePreviewKind(tc.mediaType); got != tc.want {
			t.Errorf("DerivePreviewKind(%q) = %q, want %q", tc.mediaType, got, tc.want)
		}
	}
}

func TestParseFileState(t *testing.T) {
	if _, err := ParseFileState("deleted"); err == nil {
		t.Fatal("expected error for unknown state")
	}
	if _, err := ParseFileState(""); err == nil {
		t.Fatal("expected error for empty state")
	}
	state, err := ParseFileState("  Trashed ")
	if err != nil {
		t.Fatalf("parse trashed: %v", err)
	}
	if state != FileTrashed {
		t.Fatalf("expected trashed, got %q", state)
	}
}

func TestParsePreviewKind(t *testing.T) {
	kind, err := ParsePreviewKind("Document")
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if kind != PreviewDocument {
		t.Fatalf("expected document, got %q", kind)
	}
	if _, err := ParsePreviewKind("thumbnail"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
