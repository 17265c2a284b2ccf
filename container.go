package modinspect

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// containerFormat describes one recognized on-disk encoding of a module
// image: a content matcher plus a decoder yielding the raw object bytes.
// New wrappers are added to containerFormats without touching the loader.
type containerFormat struct {
	name   string
	match  func(data []byte) bool
	decode func(data []byte) ([]byte, error)
}

// Match order is irrelevant: the magics are mutually exclusive.
var containerFormats = []containerFormat{
	{name: "elf", match: hasMagic(0x7f, 'E', 'L', 'F'), decode: decodeRaw},
	{name: "zstd", match: hasMagic(0x28, 0xb5, 0x2f, 0xfd), decode: decodeZstd},
	{name: "xz", match: hasMagic(0xfd, '7', 'z', 'X', 'Z', 0x00), decode: decodeXz},
	{name: "gzip", match: hasMagic(0x1f, 0x8b), decode: decodeGzip},
}

// decodeContainer sniffs data's container format from its content (never
// from a file name) and returns the contained object image plus the format
// name. Content matching nothing yields ErrUnknownFormat.
func decodeContainer(data []byte) ([]byte, string, error) {
	for _, f := range containerFormats {
		if !f.match(data) {
			continue
		}
		decoded, err := f.decode(data)
		if err != nil {
			return nil, f.name, fmt.Errorf("decode %s container: %w", f.name, err)
		}
		return decoded, f.name, nil
	}
	return nil, "", ErrUnknownFormat
}

func hasMagic(magic ...byte) func([]byte) bool {
	return func(data []byte) bool {
		return len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic)
	}
}

func decodeRaw(data []byte) ([]byte, error) {
	return data, nil
}

func decodeZstd(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func decodeXz(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func decodeGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
