package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// MaxUploadBytes is the per-file size ceiling enforced before any processing.
const MaxUploadBytes = 16 << 20 // 16 MiB

// GetDataDir resolves the base directory for all docuscan storage. It checks
// DOCUSCAN_DIR first, then XDG paths, and finally falls back to the user's
// home directory.
func GetDataDir() string {
	if explicit := os.Getenv("DOCUSCAN_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "docuscan")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "docuscan")
}

// GetDBPath returns the absolute path to the SQLite database file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "index.db")
}

// GetUploadsDir returns the directory that stores uploaded and normalized images.
func GetUploadsDir() string {
	return filepath.Join(GetDataDir(), "uploads")
}

// GetPDFDir returns the directory that stores generated PDF documents.
func GetPDFDir() string {
	return filepath.Join(GetDataDir(), "pdfs")
}

// GetListenAddr returns the HTTP listen address for the serve command.
func GetListenAddr() string {
	if addr := os.Getenv("DOCUSCAN_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
