package domain

import "time"

// CacheVersion muda sempre que o formato do cache local deixa de ser compatível
const CacheVersion = 1

// CachedDataset é o envelope gravado no cache do questctl
type CachedDataset struct {
	Version      int           `json:"version"`
	Schema       CSVSchema     `json:"schema"`
	SavedAt      time.Time     `json:"saved_at"`
	Title        string        `json:"title"`
	UploadedDate *time.Time    `json:"uploaded_date,omitempty"`
	Records      []SalesRecord `json:"records"`
}
