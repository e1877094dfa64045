package database

import (
	"database/sql"
	"time"

	sqldb "github.com/docuscan/docuscan/internal/database/sqlc"
)

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}

func optionalTime(v sql.NullTime) time.Time {
	if v.Valid {
		return v.Time
	}
	return time.Time{}
}

// mapScanRow converts a database scan row to a ScanRecord.
func mapScanRow(row sqldb.Scan) ScanRecord {
	return ScanRecord{
		ID:        row.ID,
		Filename:  row.Filename,
		CreatedAt: optionalTime(row.CreatedAt),
		PageCount: row.PageCount,
	}
}
