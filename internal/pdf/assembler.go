// Package pdf lays staged images out onto a multi-page A4 document.
package pdf

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	// bmp and webp originals can reach the assembler when enhancement failed;
	// decode their dimensions so they get a proper unsupported-format page.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// placement margin for the error annotation on placeholder pages, in points.
const errorTextMargin = 72.0

// Assembler builds one PDF from an ordered list of image locations.
type Assembler struct {
	log zerolog.Logger
}

// NewAssembler creates an Assembler that logs absorbed per-image failures.
func NewAssembler(log zerolog.Logger) *Assembler {
	return &Assembler{log: log}
}

// Assemble writes a single document to outPath with one A4 page per image in
// input order. Each image is scaled uniformly to fit its page and centered;
// aspect ratio is never distorted. An image that cannot be opened or placed
// yields a placeholder page naming the file instead of aborting the document.
// Only document-level failures (such as an unwritable outPath) are returned,
// and no partial file is left behind when finalization fails.
func (a *Assembler) Assemble(paths []string, outPath string) error {
	if len(paths) == 0 {
		return fmt.Errorf("pdf assembler: no images to place")
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont("Helvetica", "", 12)
	pageW, pageH := doc.GetPageSize()

	for _, path := range paths {
		doc.AddPage()
		if err := placeImage(doc, path, pageW, pageH); err != nil {
			a.log.Error().Err(err).Str("path", path).Msg("image placement failed, rendering placeholder page")
			doc.Text(errorTextMargin, errorTextMargin, fmt.Sprintf("Error processing image: %s", filepath.Base(path)))
		}
	}

	if err := doc.OutputFileAndClose(outPath); err != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("failed to finalize document: %w", err)
	}

	return nil
}

// placeImage draws the image scaled to fit and centered on the current page.
func placeImage(doc *gofpdf.Fpdf, path string, pageW, pageH float64) error {
	width, height, imgType, err := imageInfo(path)
	if err != nil {
		return err
	}

	scale := pageW / float64(width)
	if s := pageH / float64(height); s < scale {
		scale = s
	}
	scaledW := float64(width) * scale
	scaledH := float64(height) * scale
	x := (pageW - scaledW) / 2
	y := (pageH - scaledH) / 2

	opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
	doc.ImageOptions(path, x, y, scaledW, scaledH, false, opts, 0, "")
	if doc.Err() {
		err := doc.Error()
		doc.ClearError()
		return err
	}
	return nil
}

// imageInfo reads the pixel dimensions and maps the decoded format onto the
// image types the document writer can embed.
func imageInfo(path string) (width, height int, imgType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	switch format {
	case "jpeg":
		imgType = "JPG"
	case "png":
		imgType = "PNG"
	case "gif":
		imgType = "GIF"
	default:
		return 0, 0, "", fmt.Errorf("unsupported page image format %q for %s", format, filepath.Base(path))
	}

	return cfg.Width, cfg.Height, imgType, nil
}
