package modinspect

import (
	"context"
	"fmt"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// setConfig holds the configuration for one discovery run.
type setConfig struct {
	logger *zap.Logger
	jobs   int
}

// SetOption configures how [BuildSet] discovers and loads module files.
type SetOption func(*setConfig)

// WithLogger injects a sink for skipped-candidate diagnostics. Discovery
// behaves identically without one; the default sink discards everything.
func WithLogger(logger *zap.Logger) SetOption {
	return func(c *setConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConcurrency bounds how many module files are read and decoded in
// parallel. Values below one keep the default (GOMAXPROCS).
func WithConcurrency(n int) SetOption {
	return func(c *setConfig) {
		if n > 0 {
			c.jobs = n
		}
	}
}

// BuildSet assembles the working set for one resolution run: the kernel
// image record followed by a record for every module file matched by
// pattern (a doublestar glob, so `/lib/modules/6.8.0/**/*.ko*` works).
//
// The kernel image must load; its failure fails the whole run. Candidates
// are loaded independently and tolerantly: a file that is unreadable, of an
// unknown container format, or not an object image is logged and skipped,
// so one foreign or corrupt file cannot abort inspection of the rest.
//
// The returned records are safe to share across concurrent [Resolve] calls
// as long as they are treated as read-only.
func BuildSet(ctx context.Context, kernelPath, pattern string, opts ...SetOption) ([]*Module, error) {
	cfg := &setConfig{
		logger: zap.NewNop(),
		jobs:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	kernel, err := LoadModule(kernelPath)
	if err != nil {
		return nil, fmt.Errorf("load kernel image: %w", err)
	}
	// The kernel record takes the reserved name so resolution output can be
	// filtered no matter what the image file is called on disk.
	kernel.Name = KernelName

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand module pattern %q: %w", pattern, err)
	}

	loaded := make([]*Module, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for i, match := range matches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mod, err := LoadModule(match)
			if err != nil {
				cfg.logger.Warn("skipping module candidate",
					zap.String("path", match),
					zap.Error(err))
				return nil
			}
			loaded[i] = mod
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make([]*Module, 0, len(loaded)+1)
	set = append(set, kernel)
	for _, mod := range loaded {
		if mod != nil {
			set = append(set, mod)
		}
	}
	return set, nil
}
