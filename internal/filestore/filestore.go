package filestore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/tendererrors"
)

// maxUploadSize caps a single attachment at 10 MiB.
const maxUploadSize = 10 << 20

// Store persists uploaded tender documents and application files.
type Store interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (model.FileAttachment, error)
}

// DiskStore writes uploads under a local directory and serves them back
// through the static /uploads route.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the upload directory if needed and returns the store.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: failed to create upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (d *DiskStore) Save(_ context.Context, fh *multipart.FileHeader) (model.FileAttachment, error) {
	if fh.Size > maxUploadSize {
		return model.FileAttachment{}, fmt.Errorf("filestore: %w - file %s exceeds the 10MB limit", tendererrors.ErrValidation, fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return model.FileAttachment{}, fmt.Errorf("filestore: failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	// Uploads keep their extension but get a fresh name, so two bidders
	// attaching "offer.pdf" never collide.
	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return model.FileAttachment{}, fmt.Errorf("filestore: failed to create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return model.FileAttachment{}, fmt.Errorf("filestore: failed to write %s: %w", name, err)
	}

	return model.FileAttachment{
		Name:     fh.Filename,
		Size:     fh.Size,
		MimeType: fh.Header.Get("Content-Type"),
		URL:      d.baseURL + "/uploads/" + name,
	}, nil
}
