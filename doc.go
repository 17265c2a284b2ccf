// Package modinspect computes kernel module load order from symbol tables.
//
// Given a kernel image and a set of loadable module files, modinspect
// extracts each file's symbol interface (the global symbols it provides and
// the global undefined symbols it references), builds the resulting
// symbol-satisfaction graph, and derives a dependency-correct load order
// for a target module — the same question modprobe/depmod answer, driven
// from the binaries themselves instead of pre-built metadata. A companion
// parser turns the kernel's live module table (/proc/modules) into
// structured records.
//
// # Planning a load order
//
//	set, err := modinspect.BuildSet(ctx,
//	    "/boot/vmlinux",
//	    "/lib/modules/6.8.0/**/*.ko*",
//	    modinspect.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	order, err := modinspect.Resolve(set, "wireguard.ko")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, mod := range order {
//	    if mod.Name != modinspect.KernelName {
//	        fmt.Println(mod.Path)
//	    }
//	}
//
// Module files may be raw ELF objects or zstd/xz/gzip-compressed wrappers;
// the container is sniffed from content, never from the file extension.
// Discovery is best-effort: a candidate that fails to load is logged and
// skipped, while the kernel image itself must always load. Resolution
// failures are typed — [TargetNotFoundError] for an unknown target,
// [CycleError] for a looping reference chain — so callers decide whether
// to abort or continue.
//
// # Live module table
//
//	records, err := modinspect.ReadLiveModules()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(modinspect.FormatLiveModules(records))
//
// modinspect plans load orders; it never loads, unloads, or verifies
// modules in a running kernel.
package modinspect
