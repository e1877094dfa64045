// Package services implements the durable history ledger over the database layer.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/docuscan/docuscan/internal/database"
)

// ErrNotFound is returned when a requested history record does not exist.
var ErrNotFound = errors.New("scan record not found")

// HistoryService records completed PDF generation events and answers queries
// about them. Records are immutable; identity is assigned by the store.
type HistoryService struct {
	repo *database.ScanRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(dbCtx *database.Context) *HistoryService {
	return &HistoryService{repo: database.NewScanRepository(dbCtx)}
}

// Record appends a history entry for a freshly generated PDF and returns the
// assigned id. The creation timestamp is taken at call time. A page count
// below one is clamped to one so the record stays within the table's invariant.
func (s *HistoryService) Record(ctx context.Context, filename string, pageCount int) (int64, error) {
	if pageCount < 1 {
		pageCount = 1
	}
	return s.repo.Insert(ctx, filename, time.Now().UTC(), int64(pageCount))
}

// ListAll returns every record, newest first; identity breaks timestamp ties.
func (s *HistoryService) ListAll(ctx context.Context) ([]database.ScanRecord, error) {
	return s.repo.List(ctx)
}

// Get retrieves a record by id.
func (s *HistoryService) Get(ctx context.Context, id int64) (*database.ScanRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// Delete removes a record by id. Deleting an id that does not exist reports
// ErrNotFound; the caller owns removal of the backing file.
func (s *HistoryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
