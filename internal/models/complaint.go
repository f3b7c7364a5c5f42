package models

import (
	"io"
	"time"
)

// Complaint is one reported issue together with the submitter fields joined
// from the users table. Nullable columns use pointers so SQL NULL survives the
// round trip to JSON null instead of collapsing into zero values.
type Complaint struct {
	ID          int              `json:"id"`
	UserID      int              `json:"user_id"`
	Category    *string          `json:"category"`
	CreatedAt   time.Time        `json:"created_at"`
	FullName    *string          `json:"full_name"`
	Age         *int64           `json:"age"`
	VoterNumber *string          `json:"voter_number"`
	Gender      *string          `json:"gender"`
	Media       []ComplaintMedia `json:"media"`
}

// ComplaintMedia links a complaint to one stored file. FilePath is the blob
// store key; FileType is the multipart field name the file was submitted under.
type ComplaintMedia struct {
	ID       int    `json:"id"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

// ComplaintInput carries the metadata fields of a submission. Every field is
// optional; nil is stored as NULL.
type ComplaintInput struct {
	FullName    *string
	Age         *int64
	VoterNumber *string
	Gender      *string
	Category    *string
}

// UploadedFile is one file part of a multipart submission, regardless of the
// field name it arrived under.
type UploadedFile struct {
	FieldName    string
	OriginalName string
	Content      io.Reader
}

type Pagination struct {
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}
