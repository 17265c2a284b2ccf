package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leodido/structcli"
	"github.com/parrotmac/modinspect"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
	"go.uber.org/zap"
)

// Build metadata injected via ldflags. When built without ldflags (plain
// `go build`), these remain at their zero values and the version command
// omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "modinspect",
		Short: "Symbol-driven kernel module dependency planner",
		Long: `modinspect inspects a kernel image and a tree of loadable module files,
derives each file's provided and referenced symbols, and computes a valid
load order for a target module. It also parses the kernel's live module
table (/proc/modules) into structured records.

It plans load orders; it never loads or unloads modules.`,
		SilenceUsage: true,
	}

	root.AddCommand(resolveCmd())
	root.AddCommand(lsmodCmd())
	root.AddCommand(modprobeCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// ResolveOptions defines flags for the resolve subcommand.
type ResolveOptions struct {
	Kernel  string `flag:"kernel" flagshort:"k" flagdescr:"Path to the kernel image (vmlinux)" flagrequired:"true"`
	Modules string `flag:"modules" flagshort:"m" flagdescr:"Module search root, or an explicit glob (** supported)" flagrequired:"true"`
	Target  string `flag:"target" flagshort:"t" flagdescr:"Name of the module to resolve (file base name)" flagrequired:"true"`
	Jobs    int    `flag:"jobs" flagshort:"j" flagdescr:"Module files decoded in parallel (0 = GOMAXPROCS)"`
	Debug   bool   `flag:"debug" flagdescr:"Enable debug logging"`
}

func (o *ResolveOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func resolveCmd() *cobra.Command {
	opts := &ResolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Compute the load order for a target module",
		Long: `Builds a working set from the kernel image and every module file under
--modules, then prints the file paths of the target's dependency closure,
one per line, dependencies first. Candidates that fail to load are skipped
with a warning; a missing target or an unreadable kernel image fails the
run.`,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			logger, err := newLogger(opts.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			set, err := modinspect.BuildSet(c.Context(), opts.Kernel, modulesPattern(opts.Modules),
				modinspect.WithLogger(logger),
				modinspect.WithConcurrency(opts.Jobs),
			)
			if err != nil {
				return err
			}

			order, err := modinspect.Resolve(set, opts.Target)
			if err != nil {
				return err
			}

			for _, mod := range order {
				if mod.Name == modinspect.KernelName {
					continue
				}
				fmt.Println(mod.Path)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// outputFormat selects how lsmod renders parsed records.
type outputFormat enumflag.Flag

const (
	formatText outputFormat = iota
	formatJSON
)

var outputFormatIDs = map[outputFormat][]string{
	formatText: {"text"},
	formatJSON: {"json"},
}

func lsmodCmd() *cobra.Command {
	format := formatText

	cmd := &cobra.Command{
		Use:   "lsmod",
		Short: "Show the kernel's live module table",
		RunE: func(c *cobra.Command, args []string) error {
			records, err := modinspect.ReadLiveModules()
			if err != nil {
				return err
			}

			if format == formatJSON {
				return printJSON(records)
			}
			fmt.Print(modinspect.FormatLiveModules(records))
			return nil
		},
	}

	cmd.Flags().VarP(
		enumflag.New(&format, "format", outputFormatIDs, enumflag.EnumCaseInsensitive),
		"format", "f", "output format (text, json)")
	return cmd
}

func modprobeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modprobe",
		Short: "Reserved subcommand",
		RunE: func(c *cobra.Command, args []string) error {
			return errors.New("modprobe is not implemented: modinspect plans load orders, it does not load modules")
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool and kernel version",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("modinspect %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("modinspect (dev)")
			}

			if release, err := modinspect.KernelRelease(); err == nil {
				fmt.Printf("Kernel: %s\n", release)
			}
			return nil
		},
	}
}

// modulesPattern turns a plain directory argument into a recursive glob for
// module files, compressed variants included. Explicit glob patterns pass
// through untouched.
func modulesPattern(arg string) string {
	if strings.ContainsAny(arg, "*?[{") {
		return arg
	}
	return filepath.Join(arg, "**", "*.ko*")
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
