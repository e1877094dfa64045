package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqldb "github.com/docuscan/docuscan/internal/database/sqlc"
)

// ScanRepository provides CRUD access to the scans table.
type ScanRepository struct {
	ctx *Context
}

// NewScanRepository creates a repository bound to the given database context.
func NewScanRepository(dbCtx *Context) *ScanRepository {
	return &ScanRepository{ctx: dbCtx}
}

// Insert stores a new scan row and returns the identity assigned by the store.
func (r *ScanRepository) Insert(ctx context.Context, filename string, createdAt time.Time, pageCount int64) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("scan repository: missing database context")
	}

	res, err := queries.InsertScan(ctx, sqldb.InsertScanParams{
		Filename:  filename,
		CreatedAt: createdAt,
		PageCount: pageCount,
	})
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID returns the record with the given id, or nil when it does not exist.
func (r *ScanRepository) FindByID(ctx context.Context, id int64) (*ScanRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("scan repository: missing database context")
	}

	row, err := queries.FindScanByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapScanRow(row)
	return &record, nil
}

// List returns all records ordered newest first.
func (r *ScanRepository) List(ctx context.Context) ([]ScanRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("scan repository: missing database context")
	}

	rows, err := queries.ListScans(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ScanRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapScanRow(row))
	}
	return result, nil
}

// Delete removes the record with the given id and reports whether a row was removed.
func (r *ScanRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("scan repository: missing database context")
	}

	affected, err := queries.DeleteScanByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns the number of stored records.
func (r *ScanRepository) Count(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("scan repository: missing database context")
	}
	return queries.CountScans(ctx)
}
