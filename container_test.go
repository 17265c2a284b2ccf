package modinspect

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func TestDecodeContainer_RawELFPassthrough(t *testing.T) {
	data := append([]byte{0x7f, 'E', 'L', 'F'}, []byte("rest of the image")...)

	decoded, name, err := decodeContainer(data)
	if err != nil {
		t.Fatalf("decodeContainer() error = %v", err)
	}
	if name != "elf" {
		t.Errorf("format = %q, want %q", name, "elf")
	}
	if !bytes.Equal(decoded, data) {
		t.Error("raw object image must pass through unchanged")
	}
}

func TestDecodeContainer_Zstd(t *testing.T) {
	payload := []byte("pretend object image")
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	if _, err := enc.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	decoded, name, err := decodeContainer(buf.Bytes())
	if err != nil {
		t.Fatalf("decodeContainer() error = %v", err)
	}
	if name != "zstd" {
		t.Errorf("format = %q, want %q", name, "zstd")
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("decoded = %q, want %q", decoded, payload)
	}
}

func TestDecodeContainer_Xz(t *testing.T) {
	payload := []byte("pretend object image")
	var buf bytes.Buffer
	enc, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter() error = %v", err)
	}
	if _, err := enc.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	decoded, name, err := decodeContainer(buf.Bytes())
	if err != nil {
		t.Fatalf("decodeContainer() error = %v", err)
	}
	if name != "xz" {
		t.Errorf("format = %q, want %q", name, "xz")
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("decoded = %q, want %q", decoded, payload)
	}
}

func TestDecodeContainer_Gzip(t *testing.T) {
	payload := []byte("pretend object image")
	var buf bytes.Buffer
	enc := gzip.NewWriter(&buf)
	if _, err := enc.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	decoded, name, err := decodeContainer(buf.Bytes())
	if err != nil {
		t.Fatalf("decodeContainer() error = %v", err)
	}
	if name != "gzip" {
		t.Errorf("format = %q, want %q", name, "gzip")
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("decoded = %q, want %q", decoded, payload)
	}
}

func TestDecodeContainer_UnknownFormat(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("#!/bin/sh\necho hello\n"),
		[]byte("MZ\x90\x00"), // PE, deliberately foreign
		{},
	} {
		_, _, err := decodeContainer(data)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("decodeContainer(%q) error = %v, want ErrUnknownFormat", data, err)
		}
	}
}

func TestDecodeContainer_CorruptPayload(t *testing.T) {
	// Valid zstd magic followed by garbage: sniffing succeeds, decoding
	// must not.
	data := []byte{0x28, 0xb5, 0x2f, 0xfd, 0xde, 0xad, 0xbe, 0xef}

	_, _, err := decodeContainer(data)
	if err == nil {
		t.Fatal("decodeContainer() expected error for corrupt zstd payload")
	}
	if errors.Is(err, ErrUnknownFormat) {
		t.Fatal("corrupt payload must be a decode failure, not an unknown format")
	}
}
