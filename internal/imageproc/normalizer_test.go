package imageproc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.Black)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image failed: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image failed: %v", err)
	}
}

func TestNormalizeProducesJPEGCopy(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "invoice.png")
	writeTestPNG(t, src, 1200, 1600)

	n := NewNormalizer(zerolog.Nop())
	got := n.Normalize(src)

	if got == src {
		t.Fatalf("expected a processed copy, got original path")
	}
	if !strings.HasSuffix(got, "_processed.jpg") {
		t.Fatalf("unexpected processed path: %s", got)
	}

	w, h, err := Dimensions(got)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if w != 1200 || h != 1600 {
		t.Fatalf("expected dimensions preserved for small input, got %dx%d", w, h)
	}

	if _, err := os.Stat(src); err != nil {
		t.Fatalf("original must be preserved: %v", err)
	}
}

func TestNormalizeBoundsLongerSide(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "poster.png")
	writeTestPNG(t, src, 2500, 1000)

	n := NewNormalizer(zerolog.Nop())
	got := n.Normalize(src)

	w, h, err := Dimensions(got)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if w > maxDimension || h > maxDimension {
		t.Fatalf("expected dimensions within %d, got %dx%d", maxDimension, w, h)
	}
	if w != 2000 || h != 800 {
		t.Fatalf("expected aspect-preserving downscale to 2000x800, got %dx%d", w, h)
	}
}

func TestNormalizeFallsBackOnUnreadableInput(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "not-an-image.png")
	if err := os.WriteFile(src, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	n := NewNormalizer(zerolog.Nop())
	if got := n.Normalize(src); got != src {
		t.Fatalf("expected original path on decode failure, got %s", got)
	}
}

func TestAllowedExtension(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.bmp", "f.webp"} {
		if !AllowedExtension(name) {
			t.Fatalf("expected %s to be allowed", name)
		}
	}
	for _, name := range []string{"a.pdf", "b.txt", "noext", "tricky.png.exe"} {
		if AllowedExtension(name) {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}

func TestProcessedPath(t *testing.T) {
	got := ProcessedPath("/data/uploads/abc.webp")
	if got != "/data/uploads/abc_processed.jpg" {
		t.Fatalf("unexpected processed path: %s", got)
	}
}
