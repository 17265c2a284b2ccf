package modinspect

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestLoadModule_MissingFile(t *testing.T) {
	_, err := LoadModule(filepath.Join(t.TempDir(), "missing.ko"))
	if err == nil {
		t.Fatal("LoadModule() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "missing.ko") {
		t.Errorf("error %q does not name the failing file", err)
	}
}

func TestLoadModule_UnknownContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.ko")
	if err := os.WriteFile(path, []byte("definitely not a module\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadModule(path)
	if err == nil {
		t.Fatal("LoadModule() expected error for unknown container")
	}

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("LoadModule() error = %T, want *FormatError", err)
	}
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error %v does not wrap ErrUnknownFormat", err)
	}
	if formatErr.Path != path {
		t.Errorf("FormatError.Path = %q, want %q", formatErr.Path, path)
	}
}

func TestLoadModule_CompressedNonObject(t *testing.T) {
	// Sniffing and decompression succeed, but the contained buffer is not
	// an object image.
	var buf bytes.Buffer
	enc := gzip.NewWriter(&buf)
	if _, err := enc.Write([]byte("plain text inside a gzip wrapper")); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "wrapped.ko.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadModule(path)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("LoadModule() error = %v, want *FormatError", err)
	}
	if !strings.Contains(err.Error(), "parse object image") {
		t.Errorf("error %q should report the object parse failure", err)
	}
}

func TestLoadModule_TruncatedELF(t *testing.T) {
	// A correct magic with nothing behind it: recognized container, broken
	// object image.
	path := filepath.Join(t.TempDir(), "truncated.ko")
	if err := os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F'}, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadModule(path)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("LoadModule() error = %v, want *FormatError", err)
	}
}
