package relay

import (
	"os"
	"sync"
	"time"
)

const (
	writeAttempts = 50
	writeBackoff  = 10 * time.Millisecond
)

// Writer is the child's side of a relay. Each Write opens the channel file
// for append and closes it again, so the parent can drain the file between
// writes.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter returns a Writer appending to path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write implements io.Writer. It retries while the parent holds the file.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err error
	for i := 0; i < writeAttempts; i++ {
		var n int
		n, err = w.writeOnce(p)
		if err == nil || !isSharingViolation(err) {
			return n, err
		}
		time.Sleep(writeBackoff)
	}
	return 0, err
}

func (w *Writer) writeOnce(p []byte) (int, error) {
	f, err := os.OpenFile(w.path, appendFlags, 0o600)
	if err != nil {
		return 0, err
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return 0, err
	}
	n, err := f.Write(p)
	_ = unlockFile(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
