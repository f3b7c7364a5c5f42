package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"complaintBack/internal/models"
	"complaintBack/internal/services"
)

const (
	maxFileSize    = 50 << 20 // per uploaded file
	maxRequestSize = 64 << 20 // whole multipart payload
	memoryLimit    = 32 << 20 // multipart parse buffer, rest spills to disk
)

type ComplaintHandler struct {
	Service *services.ComplaintService
}

// CreateComplaint accepts a multipart submission: optional metadata fields and
// any number of files under any field name. Files are persisted before the
// database transaction; upload-layer violations answer 400 before anything is
// written.
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "File upload error")
		return
	}

	input := models.ComplaintInput{
		FullName:    formValueOrNil(r, "fullName"),
		Age:         formInt64OrNil(r, "age"),
		VoterNumber: formValueOrNil(r, "voterNumber"),
		Gender:      formValueOrNil(r, "gender"),
		Category:    formValueOrNil(r, "categories"),
	}

	var files []models.UploadedFile
	if r.MultipartForm != nil {
		for field, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				if fh.Size > maxFileSize {
					writeError(w, http.StatusBadRequest,
						fmt.Sprintf("file %s exceeds the 50MB limit", fh.Filename))
					return
				}
				f, err := fh.Open()
				if err != nil {
					writeError(w, http.StatusInternalServerError, "Failed to open uploaded file")
					return
				}
				defer f.Close()
				files = append(files, models.UploadedFile{
					FieldName:    field,
					OriginalName: fh.Filename,
					Content:      f,
				})
			}
		}
	}

	id, err := h.Service.SubmitComplaint(r.Context(), input, files)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			writeError(w, http.StatusBadRequest, "Submission references a missing record")
			return
		}
		log.Printf("SubmitComplaint error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to submit complaint",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Complaint submitted successfully",
		"complaintId": id,
	})
}

func (h *ComplaintHandler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	// Garbage or missing values parse to 0; the service substitutes defaults.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	complaints, pagination, err := h.Service.GetComplaints(r.Context(), page, limit)
	if err != nil {
		log.Printf("GetComplaints error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to fetch complaints",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       complaints,
		"pagination": pagination,
	})
}

func (h *ComplaintHandler) GetComplaintByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	complaint, err := h.Service.GetComplaintByID(r.Context(), id)
	if errors.Is(err, models.ErrComplaintNotFound) {
		writeError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	if err != nil {
		log.Printf("GetComplaintByID error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch complaint")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": complaint})
}

func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	err = h.Service.DeleteComplaint(r.Context(), id)
	if errors.Is(err, models.ErrComplaintNotFound) {
		writeError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	if err != nil {
		log.Printf("DeleteComplaint error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to delete complaint",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Complaint deleted successfully",
	})
}

// ServeMedia streams a stored file back by its generated key.
func (h *ComplaintHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(getParam(r, "filename"))

	blob, err := h.Service.OpenMedia(r.Context(), filename)
	if errors.Is(err, models.ErrBlobNotFound) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		log.Printf("ServeMedia error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer blob.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, blob)
}

// formValueOrNil maps both a missing field and an empty string to nil, so the
// repository stores NULL rather than "".
func formValueOrNil(r *http.Request, name string) *string {
	v := r.FormValue(name)
	if v == "" {
		return nil
	}
	return &v
}

// formInt64OrNil treats missing, empty and non-numeric values as absent.
func formInt64OrNil(r *http.Request, name string) *int64 {
	v := r.FormValue(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
