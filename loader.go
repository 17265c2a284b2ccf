package modinspect

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LoadModule reads one module file (or the kernel image) and summarizes its
// symbol interface as a [Module].
//
// The container format is sniffed from the file's content, so a plain .ko
// and its zstd/xz/gzip-wrapped variants all load the same way regardless of
// extension. Compressed images are fully decompressed in memory before
// parsing. There is no partial success: either a complete record is
// returned or an error describing why the file is unusable.
func LoadModule(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module %q: %w", path, err)
	}

	image, _, err := decodeContainer(data)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	obj, err := elf.NewFile(bytes.NewReader(image))
	if err != nil {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("parse object image: %w", err)}
	}

	syms, err := obj.Symbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("read symbol table: %w", err)}
	}
	// A stripped image simply provides and references nothing.

	provides, references := classifySymbols(syms)

	return &Module{
		Name:       filepath.Base(path),
		Path:       path,
		Provides:   provides,
		References: references,
	}, nil
}
