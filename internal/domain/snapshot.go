package domain

import "time"

type SnapshotStatus string

const SnapshotStatusPublished SnapshotStatus = "published"

// Snapshot é um upload completo de dados de vendas
type Snapshot struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Records     []SalesRecord  `json:"records"`
	RecordCount int            `json:"record_count"`
	Uploader    string         `json:"uploader"`
	Status      SnapshotStatus `json:"status"`
	Schema      CSVSchema      `json:"schema"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type UploadHistoryEntry struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Date        time.Time      `json:"date"`
	RecordCount int            `json:"recordCount"`
	Uploader    string         `json:"uploader"`
	Status      SnapshotStatus `json:"status"`
}

type SalesDataResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message,omitempty"`
	Data         []ScoredRecord `json:"data"`
	UploadedDate *time.Time     `json:"uploaded_date,omitempty"`
	Title        string         `json:"title,omitempty"`
}

type UploadRequest struct {
	SalesData []SalesRecord `json:"salesData"`
	Title     string        `json:"title"`
}

type UploadResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Count      int    `json:"count"`
}

type UploadHistoryResponse struct {
	Success bool                 `json:"success"`
	Uploads []UploadHistoryEntry `json:"uploads"`
}
