package bagutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		kind    Kind
		version string
	}{
		{"rosbag v2", "#ROSBAG V2.0\nxxxx", KindROSBag, "2.0"},
		{"rosbag no newline", "#ROSBAG V1.2", KindROSBag, "1.2"},
		{"png", "\x89PNG\r\n\x1a\n\x00\x00\x00\x00\x00", KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := DetectHeader([]byte(tt.header))
			if err != nil {
				t.Fatalf("DetectHeader: %v", err)
			}
			if h.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", h.Kind, tt.kind)
			}
			if h.Version != tt.version {
				t.Errorf("version = %q, want %q", h.Version, tt.version)
			}
		})
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	if _, err := DetectHeader([]byte("#RO")); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestSniffReaderShortInput(t *testing.T) {
	h, err := SniffReader(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("SniffReader: %v", err)
	}
	if h.Kind != KindUnknown {
		t.Errorf("kind = %v, want unknown", h.Kind)
	}
}

func TestSniffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bag")
	if err := os.WriteFile(path, []byte("#ROSBAG V2.0\nrest of file"), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := SniffFile(path)
	if err != nil {
		t.Fatalf("SniffFile: %v", err)
	}
	if h.Kind != KindROSBag || h.Version != "2.0" {
		t.Errorf("got %+v", h)
	}
}
