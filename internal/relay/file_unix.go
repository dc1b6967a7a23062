//go:build !windows

package relay

import (
	"os"

	"golang.org/x/sys/unix"
)

// The channel file is never recreated by the child. A child running as
// another user would otherwise own a file the parent cannot read.
const appendFlags = os.O_WRONLY | os.O_APPEND

// Unix files can be renamed and deleted while open.
func isSharingViolation(error) bool { return false }

// lockFile takes the advisory lock shared by Writer and Drain, so a drain
// never truncates a write it has not copied.
func lockFile(f *os.File) error { return unix.Flock(int(f.Fd()), unix.LOCK_EX) }

func unlockFile(f *os.File) error { return unix.Flock(int(f.Fd()), unix.LOCK_UN) }
