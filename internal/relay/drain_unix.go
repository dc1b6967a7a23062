//go:build !windows

package relay

import (
	"fmt"
	"io"
	"os"
)

// Drain implements Channel. The file stays in place until Close: under the
// lock, everything written so far is copied and the file is truncated.
func (c *FileChannel) Drain(w io.Writer) (int64, error) {
	f, err := os.OpenFile(c.path, os.O_RDWR, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("open relay output: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := lockFile(f); err != nil {
		return 0, fmt.Errorf("lock relay output: %w", err)
	}
	defer func() { _ = unlockFile(f) }()

	n, copyErr := io.Copy(w, f)
	// truncate even after a failed copy, or the same bytes come back forever
	if err := f.Truncate(0); err != nil {
		return n, fmt.Errorf("truncate relay output: %w", err)
	}
	if copyErr != nil {
		return n, fmt.Errorf("copy relay output: %w", copyErr)
	}
	return n, nil
}
