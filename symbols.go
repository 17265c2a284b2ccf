package modinspect

import "debug/elf"

// classifySymbols splits a parsed symbol table into the names a module
// provides and the names it references.
//
// Only link-visible symbols matter: STB_GLOBAL and STB_WEAK bindings count,
// everything else (locals, section symbols, ...) contributes to neither
// list. Among the visible ones, STT_NOTYPE marks an undefined symbol the
// module expects the loader to resolve elsewhere; any concrete type
// (function, object, ...) marks a definition the module exports.
//
// Both lists keep symbol-table order and duplicates so the resulting record
// is byte-for-byte reproducible for the same input.
func classifySymbols(syms []elf.Symbol) (provides, references []string) {
	for _, sym := range syms {
		switch elf.ST_BIND(sym.Info) {
		case elf.STB_GLOBAL, elf.STB_WEAK:
		default:
			continue
		}
		if elf.ST_TYPE(sym.Info) == elf.STT_NOTYPE {
			references = append(references, sym.Name)
		} else {
			provides = append(provides, sym.Name)
		}
	}
	return provides, references
}
