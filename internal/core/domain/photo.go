package domain

import "time"

// Photo is an image owned by exactly one user. At most one photo per user
// carries IsProfile=true at any time. ObjectName is the key in the blob
// store; the row holds only metadata.
type Photo struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ObjectName       string    `json:"-"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	SizeBytes        int64     `json:"size_bytes"`
	IsProfile        bool      `json:"is_profile"`
	UploadedAt       time.Time `json:"uploaded_at"`
}
