//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inodeOf extracts the inode from syscall.Stat_t on Unix systems.
// The watcher's poller uses it to notice a trigger file being replaced.

func inodeOf(info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return st.Ino
}
