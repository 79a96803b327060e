package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StampLayout formats batch timestamps in directory names. It avoids
// colons so the names are valid on every filesystem.
const StampLayout = "2006-01-02T150405"

// Stem is the config file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AllocateDir creates outDir/{stamp}_{stem}. If that name is taken a
// numeric suffix is appended until an unused name is found.
func AllocateDir(outDir string, stamp time.Time, stem string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	name := stamp.Format(StampLayout) + "_" + stem
	candidate := filepath.Join(outDir, name)
	for i := 1; ; i++ {
		err := os.Mkdir(candidate, 0755)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		candidate = filepath.Join(outDir, fmt.Sprintf("%s-%d", name, i))
	}
}

// copyFile copies src into dir under the same base name, keeping its
// permission bits and modification time.
func copyFile(src, dir string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return "", err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", err
	}
	return filepath.Base(dst), nil
}
