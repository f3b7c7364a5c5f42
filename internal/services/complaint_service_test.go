package services

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"complaintBack/internal/models"
)

type stubComplaintStore struct {
	created      []models.ComplaintMedia
	createInput  models.ComplaintInput
	createCalls  int
	createErr    error
	nextID       int
	complaints   []models.Complaint
	total        int
	gotLimit     int
	gotOffset    int
	deleteKeys   []string
	deleteErr    error
	deleteCalled bool
}

func (s *stubComplaintStore) CreateComplaint(ctx context.Context, c models.ComplaintInput, media []models.ComplaintMedia) (int, error) {
	s.createCalls++
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.createInput = c
	s.created = media
	return s.nextID, nil
}

func (s *stubComplaintStore) GetComplaints(ctx context.Context, limit, offset int) ([]models.Complaint, int, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.complaints, s.total, nil
}

func (s *stubComplaintStore) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	return models.Complaint{}, models.ErrComplaintNotFound
}

func (s *stubComplaintStore) DeleteComplaint(ctx context.Context, id int) ([]string, error) {
	s.deleteCalled = true
	return s.deleteKeys, s.deleteErr
}

type stubBlobStore struct {
	saved     map[string]string
	saveErr   error
	deleted   []string
	deleteErr map[string]error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{saved: map[string]string{}, deleteErr: map[string]error{}}
}

func (b *stubBlobStore) Save(ctx context.Context, key string, content io.Reader) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	b.saved[key] = string(data)
	return nil
}

func (b *stubBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := b.saved[key]
	if !ok {
		return nil, models.ErrBlobNotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (b *stubBlobStore) Delete(ctx context.Context, key string) error {
	if err := b.deleteErr[key]; err != nil {
		return err
	}
	b.deleted = append(b.deleted, key)
	delete(b.saved, key)
	return nil
}

func newTestService(repo *stubComplaintStore, blobs *stubBlobStore) *ComplaintService {
	return &ComplaintService{
		ComplaintRepo: repo,
		Blobs:         blobs,
		ErrorLog:      log.New(io.Discard, "", 0),
	}
}

func upload(field, name, content string) models.UploadedFile {
	return models.UploadedFile{FieldName: field, OriginalName: name, Content: strings.NewReader(content)}
}

func TestSubmitComplaintStoresEveryFile(t *testing.T) {
	repo := &stubComplaintStore{nextID: 7}
	blobs := newStubBlobStore()
	svc := newTestService(repo, blobs)

	files := []models.UploadedFile{
		upload("audioStatement", "statement.mp3", "audio-bytes"),
		upload("evidencePhoto", "street.jpg", "jpeg-bytes"),
		upload("evidencePhoto", "house.png", "png-bytes"),
	}

	id, err := svc.SubmitComplaint(context.Background(), models.ComplaintInput{}, files)
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected complaint id 7, got %d", id)
	}
	if len(repo.created) != 3 {
		t.Fatalf("expected 3 media rows, got %d", len(repo.created))
	}
	if len(blobs.saved) != 3 {
		t.Fatalf("expected 3 stored blobs, got %d", len(blobs.saved))
	}
	for i, m := range repo.created {
		if m.FileType != files[i].FieldName {
			t.Errorf("media %d: expected file type %q, got %q", i, files[i].FieldName, m.FileType)
		}
		if content, ok := blobs.saved[m.FilePath]; !ok || content == "" {
			t.Errorf("media %d: key %q does not resolve to a non-empty blob", i, m.FilePath)
		}
	}
	if !strings.HasSuffix(repo.created[0].FilePath, ".mp3") {
		t.Errorf("expected key to keep original extension, got %q", repo.created[0].FilePath)
	}
}

func TestSubmitComplaintNoMetadataNoFiles(t *testing.T) {
	repo := &stubComplaintStore{nextID: 1}
	svc := newTestService(repo, newStubBlobStore())

	id, err := svc.SubmitComplaint(context.Background(), models.ComplaintInput{}, nil)
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no media rows, got %d", len(repo.created))
	}
}

func TestSubmitComplaintRepoFailureLeavesBlobs(t *testing.T) {
	repo := &stubComplaintStore{createErr: errors.New("constraint violation")}
	blobs := newStubBlobStore()
	svc := newTestService(repo, blobs)

	_, err := svc.SubmitComplaint(context.Background(), models.ComplaintInput{},
		[]models.UploadedFile{upload("photo", "a.jpg", "x"), upload("photo", "b.jpg", "y")})
	if err == nil {
		t.Fatal("expected error from failed transaction")
	}
	// Blobs written before the transaction stay behind as orphans.
	if len(blobs.saved) != 2 {
		t.Fatalf("expected 2 orphaned blobs, got %d", len(blobs.saved))
	}
}

func TestSubmitComplaintBlobFailureSkipsDatabase(t *testing.T) {
	repo := &stubComplaintStore{}
	blobs := newStubBlobStore()
	blobs.saveErr = errors.New("disk full")
	svc := newTestService(repo, blobs)

	_, err := svc.SubmitComplaint(context.Background(), models.ComplaintInput{},
		[]models.UploadedFile{upload("photo", "a.jpg", "x")})
	if err == nil {
		t.Fatal("expected error from blob store")
	}
	if repo.createCalls != 0 {
		t.Fatalf("transaction must not start after a blob write failure, got %d calls", repo.createCalls)
	}
}

func TestGetComplaintsPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int
		wantPages   int
		wantNext    bool
		wantPrev    bool
		wantLimit   int
		wantOffset  int
	}{
		{"first of three", 1, 2, 5, 3, true, false, 2, 0},
		{"last of three", 3, 2, 5, 3, false, true, 2, 4},
		{"middle", 2, 2, 5, 3, true, true, 2, 2},
		{"defaults", 0, 0, 5, 1, false, false, 100, 0},
		{"empty table", 1, 10, 0, 0, false, false, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubComplaintStore{total: tc.total}
			svc := newTestService(repo, newStubBlobStore())

			_, p, err := svc.GetComplaints(context.Background(), tc.page, tc.limit)
			if err != nil {
				t.Fatalf("GetComplaints: %v", err)
			}
			if p.TotalPages != tc.wantPages {
				t.Errorf("totalPages: expected %d, got %d", tc.wantPages, p.TotalPages)
			}
			if p.HasNextPage != tc.wantNext {
				t.Errorf("hasNextPage: expected %v, got %v", tc.wantNext, p.HasNextPage)
			}
			if p.HasPrevPage != tc.wantPrev {
				t.Errorf("hasPrevPage: expected %v, got %v", tc.wantPrev, p.HasPrevPage)
			}
			if repo.gotLimit != tc.wantLimit || repo.gotOffset != tc.wantOffset {
				t.Errorf("expected limit/offset %d/%d, got %d/%d",
					tc.wantLimit, tc.wantOffset, repo.gotLimit, repo.gotOffset)
			}
			if p.Total != tc.total {
				t.Errorf("total: expected %d, got %d", tc.total, p.Total)
			}
		})
	}
}

func TestDeleteComplaintBestEffortCleanup(t *testing.T) {
	repo := &stubComplaintStore{deleteKeys: []string{"a.jpg", "b.jpg", "c.jpg"}}
	blobs := newStubBlobStore()
	blobs.saved = map[string]string{"a.jpg": "x", "b.jpg": "y", "c.jpg": "z"}
	blobs.deleteErr["b.jpg"] = errors.New("permission denied")
	svc := newTestService(repo, blobs)

	if err := svc.DeleteComplaint(context.Background(), 1); err != nil {
		t.Fatalf("a failed blob deletion must not fail the operation: %v", err)
	}
	if len(blobs.deleted) != 2 {
		t.Fatalf("expected 2 successful blob deletions, got %d", len(blobs.deleted))
	}
}

func TestDeleteComplaintNotFound(t *testing.T) {
	repo := &stubComplaintStore{deleteErr: models.ErrComplaintNotFound}
	blobs := newStubBlobStore()
	blobs.saved = map[string]string{"a.jpg": "x"}
	svc := newTestService(repo, blobs)

	err := svc.DeleteComplaint(context.Background(), 99)
	if !errors.Is(err, models.ErrComplaintNotFound) {
		t.Fatalf("expected ErrComplaintNotFound, got %v", err)
	}
	if len(blobs.deleted) != 0 {
		t.Fatalf("no blob may be deleted when the rows were not, got %d", len(blobs.deleted))
	}
}
