package documents

import "time"

// Document is the metadata record for one uploaded document. Each record
// owns exactly one blob at StoragePath; the blob has no identity of its
// own once a record exists for it.
type Document struct {
	ID          string
	UserID      string
	FileName    string
	StoragePath string

	// FileURL is derived from StoragePath on every read and never persisted.
	FileURL string

	// Enrichment fields, populated by an out-of-scope process. Absence is a
	// valid, permanent state.
	Category     *string
	DocType      *string
	Supplier     *string
	IssueDate    *time.Time
	Amount       *float64
	AIConfidence *float64
	TextContent  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt is the single source of truth for visibility: null means
	// active, non-null means soft-deleted. Once set it is never cleared.
	DeletedAt *time.Time
}

// Active reports whether the document is visible in listings.
func (d Document) Active() bool {
	return d.DeletedAt == nil
}
