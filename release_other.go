//go:build !linux

package modinspect

// KernelRelease returns the running kernel's release string.
// Only Linux exposes one.
func KernelRelease() (string, error) {
	return "", ErrUnsupportedPlatform
}
