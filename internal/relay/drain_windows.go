//go:build windows

package relay

import (
	"fmt"
	"io"
	"os"
)

// Drain implements Channel. The file is first renamed to a private name so
// writes that land while copying go to a fresh file and are picked up by
// the next drain. A file the child is writing at that instant is left for
// the next drain.
func (c *FileChannel) Drain(w io.Writer) (int64, error) {
	private := c.drainPath()
	if err := os.Rename(c.path, private); err != nil {
		if os.IsNotExist(err) || isSharingViolation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("take relay output: %w", err)
	}
	f, err := os.Open(private)
	if err != nil {
		return 0, fmt.Errorf("open relay output: %w", err)
	}
	n, copyErr := io.Copy(w, f)
	_ = f.Close()
	if err := os.Remove(private); err != nil && !os.IsNotExist(err) {
		return n, fmt.Errorf("delete relay output: %w", err)
	}
	if copyErr != nil {
		return n, fmt.Errorf("copy relay output: %w", copyErr)
	}
	return n, nil
}
