package modinspect

import "fmt"

// KernelName is the reserved record name for the kernel image itself. The
// kernel participates in symbol resolution like any module (it satisfies
// references) but is never part of a "modules to load" plan, so consumers
// filter it from final output by this name.
const KernelName = "vmlinux"

// Module summarizes the symbol interface of one kernel module file or the
// kernel image: the global symbols it defines and exports, and the global
// undefined symbols it expects another binary to supply.
//
// A Module is immutable once built. Both symbol lists preserve symbol-table
// order, duplicates included, so records are reproducible for identical
// input files.
type Module struct {
	// Name identifies the module, derived from the file base name
	// (or KernelName for the kernel image).
	Name string
	// Path is the originating file location, reported verbatim in load plans.
	Path string
	// Provides lists global symbols the module defines and exports.
	Provides []string
	// References lists global symbols the module needs but does not define.
	References []string
}

// ModuleState is the lifecycle state of a live (already loaded) module as
// reported by the kernel's module table.
type ModuleState int

const (
	// StateLive means the module is fully initialized and running.
	StateLive ModuleState = iota
	// StateLoading means the module is still initializing.
	StateLoading
	// StateUnloading means the module is being removed.
	StateUnloading
)

func (s ModuleState) String() string {
	switch s {
	case StateLive:
		return "Live"
	case StateLoading:
		return "Loading"
	case StateUnloading:
		return "Unloading"
	default:
		return fmt.Sprintf("ModuleState(%d)", int(s))
	}
}

// MarshalText renders the state as its module-table token, so JSON output
// round-trips the listing vocabulary instead of bare integers.
func (s ModuleState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LiveModule is one record of the kernel's live module table (the
// /proc/modules format).
type LiveModule struct {
	Name string `json:"name"`
	// Size is the module's memory footprint in bytes.
	Size uint64 `json:"size"`
	// Refs is the module's reference count. Note that Refs and
	// len(Dependents) need not match: the kernel also counts holders that
	// are not modules (open device nodes, mounted filesystems, ...).
	Refs uint32 `json:"refs"`
	// Dependents lists the modules using this one, in listing order.
	// It is nil when the listing shows the "-" placeholder.
	Dependents []string    `json:"dependents,omitempty"`
	State      ModuleState `json:"state"`
	// Address is the load-address token, carried opaquely: formats vary
	// (and are zeroed for non-root readers), so it is not decoded.
	Address string `json:"address"`
}
