package sqldb

import (
	"context"
	"database/sql"
	"time"
)

// Scan mirrors a row of the scans table.
type Scan struct {
	ID        int64
	Filename  string
	CreatedAt sql.NullTime
	PageCount int64
}

const insertScan = `
INSERT INTO scans (filename, created_at, page_count)
VALUES (?, ?, ?)
`

// InsertScanParams holds the arguments for InsertScan.
type InsertScanParams struct {
	Filename  string
	CreatedAt time.Time
	PageCount int64
}

func (q *Queries) InsertScan(ctx context.Context, arg InsertScanParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertScan, arg.Filename, arg.CreatedAt, arg.PageCount)
}

const findScanByID = `
SELECT id, filename, created_at, page_count
FROM scans
WHERE id = ?
`

func (q *Queries) FindScanByID(ctx context.Context, id int64) (Scan, error) {
	row := q.db.QueryRowContext(ctx, findScanByID, id)
	var s Scan
	err := row.Scan(&s.ID, &s.Filename, &s.CreatedAt, &s.PageCount)
	return s, err
}

const listScans = `
SELECT id, filename, created_at, page_count
FROM scans
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListScans(ctx context.Context) ([]Scan, error) {
	rows, err := q.db.QueryContext(ctx, listScans)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Scan
	for rows.Next() {
		var s Scan
		if err := rows.Scan(&s.ID, &s.Filename, &s.CreatedAt, &s.PageCount); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

const deleteScanByID = `
DELETE FROM scans
WHERE id = ?
`

func (q *Queries) DeleteScanByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteScanByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countScans = `
SELECT COUNT(*) FROM scans
`

func (q *Queries) CountScans(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countScans)
	var count int64
	err := row.Scan(&count)
	return count, err
}
