//go:build linux

package modinspect

import "golang.org/x/sys/unix"

// KernelRelease returns the running kernel's release string (e.g.
// "6.8.0-45-generic"), useful for locating /lib/modules/<release>.
func KernelRelease() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uname.Release[:]), nil
}
