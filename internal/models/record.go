package models

// StatementRecord is a parsed statement as persisted by the service layer:
// the normalized statement plus import metadata. The parsing core itself is
// stateless; records exist only at the storage edge.
type StatementRecord struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename,omitempty"`
	Source     string    `json:"source"` // "text" or "csv"
	Statement  Statement `json:"statement"`
	ImportedAt string    `json:"imported_at"` // RFC 3339
}
