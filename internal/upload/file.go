package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CandidateFile describes one file staged for upload. It is transient
// metadata for a single attempt and is never persisted as-is; only the
// attempt journal keeps a summary.
type CandidateFile struct {
	// Name is the filename presented to the server.
	Name string
	// Size is the file's length in bytes.
	Size int64
	// Path locates the content on disk. Empty in tests that fake the transport.
	Path string
}

// Ext returns the lower-cased extension including the leading dot. A name
// without a dot yields an empty extension.
func (f *CandidateFile) Ext() string {
	if f == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(f.Name))
}

// NewCandidateFile stats a file on disk and builds the staging metadata.
func NewCandidateFile(path string) (*CandidateFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("inspect file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", absPath)
	}
	return &CandidateFile{
		Name: filepath.Base(absPath),
		Size: info.Size(),
		Path: absPath,
	}, nil
}
