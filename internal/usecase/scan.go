// Package usecase drives the image-to-PDF pipeline end to end: accept and
// stage uploads, preview extraction results, commit staged images into a PDF
// with a matching history record, and keep the filesystem and database in
// agreement on download and delete.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/docuscan/docuscan/internal/config"
	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/filesystem"
	"github.com/docuscan/docuscan/internal/imageproc"
	"github.com/docuscan/docuscan/internal/ocr"
	"github.com/docuscan/docuscan/internal/pdf"
	"github.com/docuscan/docuscan/internal/services"
	"github.com/docuscan/docuscan/internal/staging"
)

// Validation errors. These are reported before any side effect happens.
var (
	ErrInvalidType  = errors.New("unsupported image type")
	ErrEmptyFile    = errors.New("file is empty")
	ErrTooLarge     = errors.New("file exceeds the 16 MiB limit")
	ErrEmptySession = errors.New("no staged images in session")
)

// ErrFileMissing indicates a history record whose backing PDF has gone missing.
var ErrFileMissing = errors.New("pdf file missing")

// PreviewItem pairs a staged image with its extracted text.
type PreviewItem struct {
	DisplayName string
	Path        string
	Text        string
}

// Scan composes the pipeline components behind session-oriented operations.
type Scan struct {
	ledger     *staging.Ledger
	normalizer *imageproc.Normalizer
	extractor  ocr.Extractor
	assembler  *pdf.Assembler
	history    *services.HistoryService
	log        zerolog.Logger
}

// NewScan wires the pipeline. The extractor is passed in explicitly so a real
// recognition engine can replace the mocked one without touching this package.
func NewScan(dbCtx *database.Context, extractor ocr.Extractor, log zerolog.Logger) *Scan {
	return &Scan{
		ledger:     staging.NewLedger(),
		normalizer: imageproc.NewNormalizer(log),
		extractor:  extractor,
		assembler:  pdf.NewAssembler(log),
		history:    services.NewHistoryService(dbCtx),
		log:        log,
	}
}

// History exposes the ledger of completed scans for read/delete surfaces.
func (u *Scan) History() *services.HistoryService {
	return u.history
}

// Stage validates an incoming image, stores it, normalizes it, and appends it
// to the session's staging area. Validation failures leave no files behind.
func (u *Scan) Stage(session, originalName string, size int64, r io.Reader) (staging.StagedImage, error) {
	if !imageproc.AllowedExtension(originalName) {
		return staging.StagedImage{}, fmt.Errorf("%w: %s", ErrInvalidType, originalName)
	}
	if size == 0 {
		return staging.StagedImage{}, ErrEmptyFile
	}
	if size > config.MaxUploadBytes {
		return staging.StagedImage{}, ErrTooLarge
	}

	path, err := filesystem.SaveUpload(r, originalName)
	if err != nil {
		return staging.StagedImage{}, fmt.Errorf("failed to store upload: %w", err)
	}

	normalized := u.normalizer.Normalize(path)

	entry := staging.StagedImage{
		DisplayName: originalName,
		Path:        normalized,
		Enhanced:    normalized != path,
	}
	u.ledger.Append(session, entry)

	return entry, nil
}

// Staged returns the session's staged images in commit order.
func (u *Scan) Staged(session string) []staging.StagedImage {
	return u.ledger.List(session)
}

// Preview runs text extraction over every staged image in order.
func (u *Scan) Preview(session string) ([]PreviewItem, error) {
	entries := u.ledger.List(session)
	if len(entries) == 0 {
		return nil, ErrEmptySession
	}

	items := make([]PreviewItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, PreviewItem{
			DisplayName: entry.DisplayName,
			Path:        entry.Path,
			Text:        u.extractor.Extract(entry.Path),
		})
	}
	return items, nil
}

// ClearStaging drops the session's staging area. Staged files stay on disk so
// a user who cleared by mistake loses no uploads.
func (u *Scan) ClearStaging(session string) {
	u.ledger.Clear(session)
}

// Commit assembles the session's staged images into a PDF, records it in the
// history ledger, and clears the staging area. On assembly failure the
// staging area is left intact so the user can retry; on record failure the
// orphaned PDF is removed so no file exists without its record.
func (u *Scan) Commit(ctx context.Context, session string) (*database.ScanRecord, string, error) {
	entries := u.ledger.List(session)
	if len(entries) == 0 {
		return nil, "", ErrEmptySession
	}

	if err := filesystem.EnsureDirs(); err != nil {
		return nil, "", fmt.Errorf("failed to prepare output directory: %w", err)
	}

	filename := generatePDFName()
	outPath := filesystem.PDFPath(filename)

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}

	if err := u.assembler.Assemble(paths, outPath); err != nil {
		return nil, "", fmt.Errorf("failed to assemble document: %w", err)
	}

	id, err := u.history.Record(ctx, filename, len(entries))
	if err != nil {
		_ = filesystem.DeleteFile(outPath)
		return nil, "", fmt.Errorf("failed to record scan: %w", err)
	}

	u.ledger.Clear(session)

	record, err := u.history.Get(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load recorded scan: %w", err)
	}

	u.log.Info().Int64("id", id).Str("filename", filename).Int("pages", len(entries)).Msg("scan committed")
	return record, outPath, nil
}

// Download resolves a history id to its PDF location. A record whose backing
// file has gone missing yields ErrFileMissing rather than claiming the file
// exists.
func (u *Scan) Download(ctx context.Context, id int64) (string, string, error) {
	record, err := u.history.Get(ctx, id)
	if err != nil {
		return "", "", err
	}

	path := filesystem.PDFPath(record.Filename)
	if !filesystem.FileExists(path) {
		return "", "", fmt.Errorf("%w: %s", ErrFileMissing, record.Filename)
	}
	return path, record.Filename, nil
}

// Delete removes a history record together with its backing file, file first.
// A file that is already gone is treated as deleted, not as an error.
func (u *Scan) Delete(ctx context.Context, id int64) error {
	record, err := u.history.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := filesystem.DeleteFile(filesystem.PDFPath(record.Filename)); err != nil {
		return fmt.Errorf("failed to delete pdf file: %w", err)
	}

	return u.history.Delete(ctx, id)
}

// generatePDFName derives the stored filename from the commit time, with a
// random suffix when two commits land in the same second.
func generatePDFName() string {
	filename := fmt.Sprintf("scan_%s.pdf", time.Now().Format("20060102_150405"))
	if filesystem.FileExists(filesystem.PDFPath(filename)) {
		filename = fmt.Sprintf("scan_%s_%s.pdf", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	}
	return filename
}
