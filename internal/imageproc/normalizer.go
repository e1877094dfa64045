// Package imageproc prepares uploaded images for PDF assembly.
package imageproc

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	// Register decoders for formats image.Decode does not know natively.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	// maxDimension bounds the longer side of a normalized image.
	maxDimension = 2000
	// contrastBoost and sharpenSigma give documents a slight scan-friendly lift.
	contrastBoost = 20
	sharpenSigma  = 0.5
	jpegQuality   = 90

	processedSuffix = "_processed"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

// AllowedExtension reports whether the filename carries a supported image extension.
func AllowedExtension(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	_, ok := allowedExtensions[ext]
	return ok
}

// Normalizer rewrites raw uploads into enhanced JPEG copies.
type Normalizer struct {
	log zerolog.Logger
}

// NewNormalizer creates a Normalizer that logs degraded processing.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize converts the image at path to RGB, bounds its longer side to
// maxDimension with Lanczos resampling, applies a mild contrast and sharpness
// boost, and writes a JPEG copy next to the original. Enhancement is best
// effort: on any failure the original path is returned unchanged so the
// caller can continue with the raw upload.
func (n *Normalizer) Normalize(path string) string {
	img, err := imaging.Open(path)
	if err != nil {
		n.log.Error().Err(err).Str("path", path).Msg("image decode failed, keeping original")
		return path
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	img = imaging.AdjustContrast(img, contrastBoost)
	img = imaging.Sharpen(img, sharpenSigma)

	processed := ProcessedPath(path)
	if err := imaging.Save(img, processed, imaging.JPEGQuality(jpegQuality)); err != nil {
		n.log.Error().Err(err).Str("path", path).Msg("image encode failed, keeping original")
		_ = os.Remove(processed)
		return path
	}

	return processed
}

// ProcessedPath derives the normalized copy's location from the original path.
func ProcessedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + processedSuffix + ".jpg"
}

// Dimensions reads only the pixel dimensions of the image at path.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
