package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"complaintBack/internal/models"
)

// Disk stores blobs as plain files under a single directory.
type Disk struct {
	Dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &Disk{Dir: dir}, nil
}

func (d *Disk) Save(ctx context.Context, key string, content io.Reader) error {
	dst, err := os.Create(d.path(key))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, content)
	return err
}

func (d *Disk) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(key))
	if os.IsNotExist(err) {
		return nil, models.ErrBlobNotFound
	}
	return f, err
}

func (d *Disk) Delete(ctx context.Context, key string) error {
	err := os.Remove(d.path(key))
	if os.IsNotExist(err) {
		return models.ErrBlobNotFound
	}
	return err
}

// path keeps every key inside Dir even if a caller passes path separators.
func (d *Disk) path(key string) string {
	return filepath.Join(d.Dir, filepath.Base(key))
}
