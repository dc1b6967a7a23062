package envstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileDocument is the on-disk layout of a FileBackend.
type fileDocument struct {
	User    string `json:"user"`
	Machine string `json:"machine"`
}

// FileBackend emulates both scopes with a JSON document. Writes replace the
// document through a temp file and rename so readers never see a partial
// value.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend stored at path. The file is created on
// the first Set.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file.
func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) load() (fileDocument, error) {
	var doc fileDocument
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return doc, nil
}

// Get implements Backend.
func (f *FileBackend) Get(scope Scope) (string, error) {
	doc, err := f.load()
	if err != nil {
		return "", err
	}
	if scope == Machine {
		return doc.Machine, nil
	}
	return doc.User, nil
}

// Set implements Backend.
func (f *FileBackend) Set(scope Scope, value string) error {
	doc, err := f.load()
	if err != nil {
		return err
	}
	if scope == Machine {
		doc.Machine = value
	} else {
		doc.User = value
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return renameOrCopy(tmpName, f.path)
}

// renameOrCopy moves tmp over dst. On Windows the rename fails while a reader
// has dst open, so fall back to copying and retry removing tmp.
func renameOrCopy(tmp, dst string) error {
	renameErr := os.Rename(tmp, dst)
	if renameErr == nil {
		return nil
	}
	src, err := os.Open(tmp)
	if err != nil {
		return fmt.Errorf("rename: %v; fallback open tmp failed: %w", renameErr, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("rename: %v; fallback open dst failed: %w", renameErr, err)
	}
	_, copyErr := io.Copy(out, src)
	_ = out.Close()
	_ = src.Close()
	for i := 0; i < 5; i++ {
		if rerr := os.Remove(tmp); rerr == nil || os.IsNotExist(rerr) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if copyErr != nil {
		return fmt.Errorf("rename: %v; fallback copy failed: %w", renameErr, copyErr)
	}
	return nil
}

// Watch reports changes to the backing file. The parent directory is watched
// since replacing the file by rename drops a watch on the file itself.
// Bursts of events coalesce into one notification.
func (f *FileBackend) Watch(ctx context.Context) (<-chan struct{}, error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	out := make(chan struct{}, 1)
	name := filepath.Base(f.path)
	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}
