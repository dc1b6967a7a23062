// Package relay carries an elevated child's console output back to the
// parent through a transient file. The child appends to the file one write
// at a time and the parent periodically takes what is there. The file is
// removed only when the parent closes the channel.
package relay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Channel is the parent's side of a relay.
type Channel interface {
	// Path is passed to the child with Flag.
	Path() string
	// Drain copies everything written so far to w and discards it.
	// Nothing written is lost or delivered twice.
	Drain(w io.Writer) (int64, error)
	// Close removes any remaining files.
	Close() error
}

// FileChannel is a Channel backed by a uniquely named file.
type FileChannel struct {
	path string
}

// NewFileChannel creates an empty channel file in dir.
func NewFileChannel(dir string) (*FileChannel, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create relay dir: %w", err)
	}
	p := filepath.Join(dir, "envpath-relay-"+uuid.NewString()+".log")
	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create relay channel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &FileChannel{path: p}, nil
}

// Path implements Channel.
func (c *FileChannel) Path() string { return c.path }

func (c *FileChannel) drainPath() string { return c.path + ".drain" }

// Close implements Channel.
func (c *FileChannel) Close() error {
	var firstErr error
	for _, p := range []string{c.path, c.drainPath()} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
