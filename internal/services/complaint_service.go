package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"complaintBack/internal/models"
	"complaintBack/internal/storage"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// ComplaintStore is the slice of the repository the service uses.
type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c models.ComplaintInput, media []models.ComplaintMedia) (int, error)
	GetComplaints(ctx context.Context, limit, offset int) ([]models.Complaint, int, error)
	GetComplaintByID(ctx context.Context, id int) (models.Complaint, error)
	DeleteComplaint(ctx context.Context, id int) ([]string, error)
}

type ComplaintService struct {
	ComplaintRepo ComplaintStore
	Blobs         storage.BlobStore
	ErrorLog      *log.Logger
}

// SubmitComplaint stores every uploaded file in the blob store first and only
// then opens the database transaction, so a committed row always has its blob.
// If the transaction fails, the blobs written here stay behind as orphans: the
// database is the source of truth and an unreferenced blob is invisible to
// readers. The orphaned keys are logged.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, input models.ComplaintInput, files []models.UploadedFile) (int, error) {
	media := make([]models.ComplaintMedia, 0, len(files))
	for _, f := range files {
		key := storage.GenerateKey(f.OriginalName)
		if err := s.Blobs.Save(ctx, key, f.Content); err != nil {
			return 0, fmt.Errorf("store upload %q: %w", f.OriginalName, err)
		}
		media = append(media, models.ComplaintMedia{FilePath: key, FileType: f.FieldName})
	}

	id, err := s.ComplaintRepo.CreateComplaint(ctx, input, media)
	if err != nil {
		for _, m := range media {
			s.ErrorLog.Printf("orphaned blob %s after failed intake: %v", m.FilePath, err)
		}
		return 0, err
	}
	return id, nil
}

// GetComplaints returns one page of complaints plus pagination metadata.
// Page and limit below 1 (including values that failed to parse upstream)
// fall back to the defaults.
func (s *ComplaintService) GetComplaints(ctx context.Context, page, limit int) ([]models.Complaint, models.Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	offset := (page - 1) * limit

	complaints, total, err := s.ComplaintRepo.GetComplaints(ctx, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := models.Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	return complaints, pagination, nil
}

func (s *ComplaintService) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	return s.ComplaintRepo.GetComplaintByID(ctx, id)
}

// DeleteComplaint removes the database rows first and cleans the blob store
// afterwards. A blob that fails to delete is logged and skipped: the rows are
// already gone, so the worst outcome is an orphaned file, never a dangling
// reference.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, id int) error {
	keys, err := s.ComplaintRepo.DeleteComplaint(ctx, id)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.Blobs.Delete(ctx, key); err != nil {
			s.ErrorLog.Printf("delete blob %s: %v", key, err)
		}
	}
	return nil
}

// OpenMedia streams a stored file back by its blob key.
func (s *ComplaintService) OpenMedia(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.Blobs.Open(ctx, key)
}
