// Package staging holds the per-session list of images awaiting PDF assembly.
package staging

import "sync"

// StagedImage is one accepted upload waiting in a session's staging area.
type StagedImage struct {
	// DisplayName is the name shown to the user, derived from the upload.
	DisplayName string
	// Path points at the normalized copy, or the original when enhancement failed.
	Path string
	// Enhanced reports whether normalization produced a processed copy.
	Enhanced bool
}

// Ledger is an ordered, session-keyed staging area. Entries are appended in
// upload order and that order determines PDF page order. Sessions are fully
// isolated from each other; the zero session is just another key.
type Ledger struct {
	mu       sync.Mutex
	sessions map[string][]StagedImage
}

// NewLedger creates an empty staging ledger.
func NewLedger() *Ledger {
	return &Ledger{sessions: make(map[string][]StagedImage)}
}

// Append adds an image to the end of the session's staging list.
func (l *Ledger) Append(session string, img StagedImage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[session] = append(l.sessions[session], img)
}

// List returns a snapshot of the session's staged images in insertion order.
// The returned slice is a copy; later appends do not affect it.
func (l *Ledger) List(session string) []StagedImage {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.sessions[session]
	if len(entries) == 0 {
		return nil
	}
	snapshot := make([]StagedImage, len(entries))
	copy(snapshot, entries)
	return snapshot
}

// Len returns the number of images staged for the session.
func (l *Ledger) Len(session string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions[session])
}

// Clear removes all entries for the session. Backing files are left on disk;
// file cleanup is the caller's decision. Clearing an empty session is a no-op.
func (l *Ledger) Clear(session string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, session)
}
