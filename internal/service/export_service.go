package service

import (
	"bytes"
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/export"
	"fitu/dashboard/internal/storage"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStorageUnavailable = errors.New("export storage is not configured")
	ErrInvalidFormat      = errors.New("invalid export format")
)

// PublishedExport is a roster file uploaded to object storage.
type PublishedExport struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	Format      string    `json:"format"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type ExportService interface {
	ExportRoster(ctx context.Context, sess domain.Session, format string, w io.Writer) error
	PublishRoster(ctx context.Context, sess domain.Session, format string) (*PublishedExport, error)
}

type exportService struct {
	rosters   RosterService
	store     storage.FileStorage // nil when publishing is disabled
	urlExpiry time.Duration
	now       func() time.Time
}

func NewExportService(rosters RosterService, store storage.FileStorage) ExportService {
	return &exportService{
		rosters:   rosters,
		store:     store,
		urlExpiry: storage.DefaultPresignedURLExpiry,
		now:       time.Now,
	}
}

// ExportRoster writes the caller's joined roster to w.
func (s *exportService) ExportRoster(ctx context.Context, sess domain.Session, format string, w io.Writer) error {
	f, err := parseExportFormat(format)
	if err != nil {
		return err
	}
	students, err := s.rosterProfiles(ctx, sess)
	if err != nil {
		return err
	}
	return export.Write(w, f, students)
}

// PublishRoster uploads the roster file and returns a presigned download URL.
func (s *exportService) PublishRoster(ctx context.Context, sess domain.Session, format string) (*PublishedExport, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	f, err := parseExportFormat(format)
	if err != nil {
		return nil, err
	}
	students, err := s.rosterProfiles(ctx, sess)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, students); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("exports/%s/%s.%s", sess.UID, uuid.NewString(), f.Extension())
	if err := s.store.PutObject(ctx, key, f.ContentType(), &buf); err != nil {
		return nil, writeFailure("upload export", err)
	}
	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		// Nobody can reach the object without a URL.
		if delErr := s.store.DeleteObject(ctx, key); delErr != nil {
			log.Printf("WARN: Failed to remove unpublished export %s: %v", key, delErr)
		}
		return nil, err
	}
	log.Printf("INFO: Roster of instructor %s published to %s", sess.UID, key)
	return &PublishedExport{
		ObjectKey:   key,
		DownloadURL: url,
		Format:      string(f),
		ExpiresAt:   s.now().UTC().Add(s.urlExpiry),
	}, nil
}

func (s *exportService) rosterProfiles(ctx context.Context, sess domain.Session) ([]domain.StudentProfile, error) {
	set, err := s.rosters.LoadRoster(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.rosters.JoinWithProfiles(ctx, set.IDs())
}

func parseExportFormat(format string) (export.Format, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", NewValidationError(ErrInvalidFormat, FieldError{Field: "format", Error: "format must be csv or xlsx"})
	}
	return f, nil
}
