package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// ValidatePath checks if the given path is a valid file path for reading.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path stat error: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", path)
	}

	if info.Mode()&os.ModeType != 0 {
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// ReadFile expands and validates path before reading the whole file.
func ReadFile(path string) ([]byte, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	if err := ValidatePath(expanded); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", expanded, err)
	}
	return data, nil
}

// EnsureParentDir creates the parent folder of path if it is missing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	return nil
}

// DisplayPath shortens an absolute path for display.
// Paths under workDir become relative to it, paths under homeDir start with "~/".
// Anything else, including relative paths, is returned unchanged.
func DisplayPath(path, workDir, homeDir string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	clean := filepath.Clean(path)

	if rel, ok := relativeTo(clean, workDir); ok {
		return rel
	}
	if rel, ok := relativeTo(clean, homeDir); ok {
		return "~/" + rel
	}
	return path
}

// relativeTo returns path relative to base when path is located inside base.
func relativeTo(path, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	rel, err := filepath.Rel(filepath.Clean(base), path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
