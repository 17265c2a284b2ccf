package modinspect

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LiveModulesPath is where Linux exposes the live module table.
const LiveModulesPath = "/proc/modules"

// ReadLiveModules parses the running kernel's module table.
func ReadLiveModules() ([]LiveModule, error) {
	data, err := os.ReadFile(LiveModulesPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", LiveModulesPath, err)
	}
	return ParseLiveModules(string(data))
}

// ParseLiveModules parses the kernel's live module table text (the
// /proc/modules format). Each record is one newline-terminated line of
// space-separated fields:
//
//	name size refs dependents state address [trailing...]
//
// Anything after the address token (taint annotations and future flags) is
// discarded without interpretation. A line that does not match the grammar
// fails the whole parse with a *[ListingParseError] naming the line.
//
// Only newline-terminated lines are records: a trailing fragment without a
// final newline is ignored, a known limitation of the grammar. Real
// listings always end in a newline.
func ParseLiveModules(data string) ([]LiveModule, error) {
	if data == "" {
		return nil, nil
	}
	nl := strings.LastIndexByte(data, '\n')
	if nl < 0 {
		// Nothing but an unterminated fragment.
		return nil, nil
	}

	lines := strings.Split(data[:nl], "\n")
	records := make([]LiveModule, 0, len(lines))
	for i, line := range lines {
		rec, err := parseLiveLine(line)
		if err != nil {
			return nil, &ListingParseError{Line: i + 1, Text: line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseLiveLine(line string) (LiveModule, error) {
	if line == "" || line[0] == ' ' {
		return LiveModule{}, fmt.Errorf("expected module name at line start")
	}

	fields := strings.Fields(line)
	if len(fields) < 6 {
		return LiveModule{}, fmt.Errorf("expected at least 6 fields, got %d", len(fields))
	}

	name := fields[0]
	if !validModuleName(name) {
		return LiveModule{}, fmt.Errorf("invalid module name %q", name)
	}

	size, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return LiveModule{}, fmt.Errorf("size %q: not an unsigned 64-bit decimal", fields[1])
	}

	refs, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return LiveModule{}, fmt.Errorf("refs %q: not an unsigned 32-bit decimal", fields[2])
	}

	// "-" is the kernel's placeholder for "no dependents". Otherwise the
	// field is comma-separated with a trailing comma, so empty segments
	// are dropped.
	var dependents []string
	if fields[3] != "-" {
		for _, dep := range strings.Split(fields[3], ",") {
			if dep != "" {
				dependents = append(dependents, dep)
			}
		}
	}

	state, err := parseModuleState(fields[4])
	if err != nil {
		return LiveModule{}, err
	}

	address := fields[5]
	if !alphanumericToken(address) {
		return LiveModule{}, fmt.Errorf("invalid address token %q", address)
	}

	return LiveModule{
		Name:       name,
		Size:       size,
		Refs:       uint32(refs),
		Dependents: dependents,
		State:      state,
		Address:    address,
	}, nil
}

func parseModuleState(token string) (ModuleState, error) {
	switch token {
	case "Live":
		return StateLive, nil
	case "Loading":
		return StateLoading, nil
	case "Unloading":
		return StateUnloading, nil
	default:
		return 0, fmt.Errorf("unknown module state %q", token)
	}
}

// validModuleName reports whether s is a module identifier: a letter
// followed by letters, digits, or underscores.
func validModuleName(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlpha(s[i]) && !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return true
}

func alphanumericToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
