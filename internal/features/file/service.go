package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/config"
	"pocket-crm/internal/features/contact"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ContactStore is the part of the contact service photos are attached through.
type ContactStore interface {
	GetContact(ctx context.Context, id primitive.ObjectID) (*contact.Contact, error)
	UpdateContact(ctx context.Context, id primitive.ObjectID, c *contact.Contact) (*contact.Contact, error)
}

type PhotoService interface {
	ValidateUpload(size int64, mimeType string) error
	SavePhoto(ctx context.Context, contactID primitive.ObjectID, mimeType string, r io.Reader) (*Photo, error)
	DeletePhoto(ctx context.Context, contactID primitive.ObjectID) error
}

type PhotoServiceImpl struct {
	Contacts ContactStore
	Dir      string
	URL      string
	Logger   *zap.Logger
}

func NewPhotoService(contacts ContactStore, cfg *config.Config, logger *zap.Logger) (PhotoService, error) {
	if err := os.MkdirAll(cfg.PhotoPath, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &PhotoServiceImpl{
		Contacts: contacts,
		Dir:      cfg.PhotoPath,
		URL:      cfg.PhotoURL,
		Logger:   logger,
	}, nil
}

func (s *PhotoServiceImpl) ValidateUpload(size int64, mimeType string) error {
	if size > MaxPhotoSize {
		return models.Invalid("file", fmt.Sprintf("too large (max %dMB)", MaxPhotoSize>>20))
	}
	if _, ok := extensions[mimeType]; !ok {
		return models.Invalid("file", fmt.Sprintf("type not allowed: %s", mimeType))
	}
	return nil
}

// SavePhoto stores the image as <contact id><ext> and points the contact's
// photo_path at it. A previous photo with another extension is removed.
func (s *PhotoServiceImpl) SavePhoto(ctx context.Context, contactID primitive.ObjectID, mimeType string, r io.Reader) (*Photo, error) {
	ext, ok := extensions[mimeType]
	if !ok {
		return nil, models.Invalid("file", fmt.Sprintf("type not allowed: %s", mimeType))
	}
	c, err := s.Contacts.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	name := contactID.Hex() + ext
	size, err := s.write(name, r)
	if err != nil {
		return nil, err
	}

	previous := c.PhotoPath
	c.PhotoPath = path.Join(s.URL, name)
	if _, err := s.Contacts.UpdateContact(ctx, contactID, c); err != nil {
		_ = os.Remove(filepath.Join(s.Dir, name))
		return nil, err
	}
	if previous != "" && previous != c.PhotoPath {
		s.remove(previous)
	}

	s.Logger.Info("contact photo saved", zap.String("contact_id", contactID.Hex()), zap.Int64("size", size))
	return &Photo{
		ContactID:  contactID,
		URL:        c.PhotoPath,
		Size:       size,
		MimeType:   mimeType,
		UploadedAt: time.Now(),
	}, nil
}

func (s *PhotoServiceImpl) write(name string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, io.LimitReader(r, MaxPhotoSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}
	if size > MaxPhotoSize {
		return 0, models.Invalid("file", fmt.Sprintf("too large (max %dMB)", MaxPhotoSize>>20))
	}
	return size, os.Rename(tmp.Name(), filepath.Join(s.Dir, name))
}

func (s *PhotoServiceImpl) DeletePhoto(ctx context.Context, contactID primitive.ObjectID) error {
	c, err := s.Contacts.GetContact(ctx, contactID)
	if err != nil {
		return err
	}
	if c.PhotoPath == "" {
		return nil
	}
	previous := c.PhotoPath
	c.PhotoPath = ""
	if _, err := s.Contacts.UpdateContact(ctx, contactID, c); err != nil {
		return err
	}
	s.remove(previous)
	return nil
}

// remove deletes a photo previously stored under the photo URL prefix.
func (s *PhotoServiceImpl) remove(url string) {
	if !strings.HasPrefix(url, s.URL+"/") {
		return
	}
	name := filepath.Base(url)
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		s.Logger.Warn("failed to delete photo", zap.String("file", name), zap.Error(err))
	}
}
