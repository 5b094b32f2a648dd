//go:build darwin

package sysmem

import "golang.org/x/sys/unix"

func totalSystemMemory() (uint64, bool) {
	bytes, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, false
	}
	return bytes, true
}
