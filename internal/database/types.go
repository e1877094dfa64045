package database

import "time"

// ScanRecord represents a row in the scans table. Each record captures one
// completed PDF generation event: the stored PDF filename, the moment it was
// created, and how many pages it contains. Records are immutable once written.
type ScanRecord struct {
	ID        int64
	Filename  string
	CreatedAt time.Time
	PageCount int64
}
