package modinspect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned when a file's content matches none of the
// recognized container formats.
var ErrUnknownFormat = errors.New("unknown container format")

// ErrUnsupportedPlatform is returned by operations that need a running
// Linux kernel (live module table, kernel release lookup) on other
// platforms. Static file inspection works everywhere.
var ErrUnsupportedPlatform = errors.New("not supported on this platform (requires Linux)")

// FormatError reports a file whose content could not be understood: an
// unrecognized container, a failed decompression, or a buffer that is not a
// parseable object image.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// TargetNotFoundError reports a resolution target that matches no record in
// the working set.
type TargetNotFoundError struct {
	Target string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("module %q not found in working set", e.Target)
}

// CycleError reports a reference chain that loops back on itself. Stack
// holds the module names on the offending descent, ending with the module
// that closed the loop.
type CycleError struct {
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Stack, " -> "))
}

// ListingParseError reports a live module table line that does not match
// the listing grammar. Line is 1-based.
type ListingParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ListingParseError) Error() string {
	return fmt.Sprintf("module listing line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ListingParseError) Unwrap() error {
	return e.Err
}
