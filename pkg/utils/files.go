package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// OutputExt is the extension given to compiler output by default.
const OutputExt = ".mlog"

// GetPathInfo resolves relPath to an absolute path and its directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", errors.Wrapf(err, "resolving %q", relPath)
	}
	return fullPath, filepath.Dir(fullPath), nil
}

// ReadSource returns the contents of the file at path. The returned error
// wraps the underlying *fs.PathError, so errors.Is(err, fs.ErrNotExist)
// still works.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %q", path)
	}
	return string(data), nil
}

// OutputPath returns override when set, otherwise in with its extension
// replaced by OutputExt.
func OutputPath(in, override string) string {
	if override != "" {
		return override
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + OutputExt
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
