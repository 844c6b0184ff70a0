package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeDirectory(t *testing.T) {
	if got := SanitizeDirectory("machine learning papers"); got != "machine-learning-papers" {
		t.Errorf("SanitizeDirectory = %q, want %q", got, "machine-learning-papers")
	}
	if got := SanitizeDirectory("algorithms"); got != "algorithms" {
		t.Errorf("SanitizeDirectory = %q, want %q", got, "algorithms")
	}
}

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"http://example.com/papers/intro.pdf", "intro.pdf"},
		{"https://example.com/a%20b.pdf", "a b.pdf"},
		{"http://example.com/docs/", "docs"},
		{"http://example.com/", ""},
		{"http://example.com", ""},
	}
	for _, tt := range tests {
		got := DeriveFilename(tt.link, "pdf")
		if tt.want != "" {
			if got != tt.want {
				t.Errorf("DeriveFilename(%q) = %q, want %q", tt.link, got, tt.want)
			}
			continue
		}
		// No usable path segment: expect a generated name with the extension
		if !strings.HasSuffix(got, ".pdf") || len(got) < 5 {
			t.Errorf("DeriveFilename(%q) = %q, want generated *.pdf name", tt.link, got)
		}
	}
}

func TestRenewOutputPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.pdf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	renewed := RenewOutputPath(path)
	if renewed != filepath.Join(dir, "file-(1).pdf") {
		t.Errorf("RenewOutputPath = %q, want file-(1).pdf", renewed)
	}
	if err := os.WriteFile(renewed, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := RenewOutputPath(path); got != filepath.Join(dir, "file-(2).pdf") {
		t.Errorf("RenewOutputPath = %q, want file-(2).pdf", got)
	}
}

func TestReadLinksFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.yaml")
	content := "- link: http://example.com/a.pdf\n- link: https://example.com/b.pdf\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	links, err := ReadLinksFile(path)
	if err != nil {
		t.Fatalf("ReadLinksFile failed: %v", err)
	}
	if len(links) != 2 || links[0] != "http://example.com/a.pdf" || links[1] != "https://example.com/b.pdf" {
		t.Errorf("ReadLinksFile = %v", links)
	}
}

func TestReadLinksFileMissingLink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.yaml")
	if err := os.WriteFile(path, []byte("- link: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadLinksFile(path); err == nil {
		t.Error("Expected error for empty link entry, got nil")
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(512); got != "512 B" {
		t.Errorf("FormatBytes(512) = %q", got)
	}
	if got := FormatBytes(1024 * 1024); got != "1.00 MB" {
		t.Errorf("FormatBytes(1MB) = %q", got)
	}
}
