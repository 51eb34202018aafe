// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// LatestFileWithSuffix returns the most recently modified file directly under dir
// whose base name (without extension) ends with suffix and whose extension matches
// ext. It returns an empty string when no file matches.
func LatestFileWithSuffix(dir, suffix, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var (
		latest     string
		latestTime int64
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ext) {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		if suffix != "" && !strings.HasSuffix(base, suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestTime {
			latest = filepath.Join(dir, name)
			latestTime = mod
		}
	}
	return latest, nil
}

// EnsureDir creates dir (and any missing parents) if it does not already exist
// and returns the path unchanged.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
