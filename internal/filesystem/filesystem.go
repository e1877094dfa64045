// Package filesystem manages the on-disk storage for uploaded images and generated PDFs.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/docuscan/docuscan/internal/config"
)

// EnsureDirs initialises the uploads and pdfs directories. Creation is
// idempotent; the data directory may move between calls in tests.
func EnsureDirs() error {
	for _, dir := range []string{config.GetUploadsDir(), config.GetPDFDir()} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return nil
}

// SaveUpload writes an uploaded image into the uploads directory under a
// freshly generated name that keeps the original extension. The display name
// is derived from the original filename, the stored name from a UUID.
func SaveUpload(r io.Reader, originalName string) (string, error) {
	if err := EnsureDirs(); err != nil {
		return "", err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		return "", fmt.Errorf("filename %q has no extension", originalName)
	}

	stored := uuid.NewString() + "." + ext
	path := filepath.Join(config.GetUploadsDir(), stored)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}

// PDFPath returns the full path for a stored PDF filename. The record's
// filename is the source of truth; the location is always derived from it.
func PDFPath(filename string) string {
	return filepath.Join(config.GetPDFDir(), filepath.Base(filename))
}

// DeleteFile removes a file if it exists. A missing file is not an error.
func DeleteFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(path)
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
