// Package artifact provides ArtifactWriter implementations
package artifact

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/errors"
)

const (
	dirPerm os.FileMode = 0755
)

// FileWriter writes artifacts as plain-text files under a directory, one
// entry per line. Writes go to a temporary file in the same directory which
// is fsynced and renamed into place, then the directory entry is fsynced, so
// a reader holding the returned location never observes a partial artifact.
type FileWriter struct {
	dir string
}

// CreateFileWriter is a factory for FileWriters rooted at dir, which is
// created if it does not exist
func CreateFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.ArtifactWriteError{Location: dir, Err: err}
	}
	return &FileWriter{dir: dir}, nil
}

// WriteLines durably writes lines to a file called name under this writer's
// directory, returning the file's path once it is fully written
func (w *FileWriter) WriteLines(name string, lines []string) (string, error) {
	location := filepath.Join(w.dir, name)
	data := []byte(strings.Join(lines, "\n") + "\n")
	if err := atomicWriteFile(location, data); err != nil {
		return "", errors.ArtifactWriteError{Location: location, Err: err}
	}
	return location, nil
}

// atomicWriteFile writes data to a temporary file next to finalPath, fsyncs
// it, renames it over finalPath, and fsyncs the parent directory so the
// rename itself is durable
func atomicWriteFile(finalPath string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(finalPath), ".reckon-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return err
	}
	if err := fsyncDir(filepath.Dir(finalPath)); err != nil {
		return err
	}
	success = true
	return nil
}

// fsyncDir opens the directory at path and calls fsync on it, making its
// entries durable
func fsyncDir(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

var _ reckon.ArtifactWriter = (*FileWriter)(nil)
