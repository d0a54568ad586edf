package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	signErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) PutObject(_ context.Context, key, contentType string, body io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://storage.test/" + key + "?expires=" + expires.String(), nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func TestExportRosterCSV(t *testing.T) {
	f := newFixture(t)
	f.seedStudent(t, "s1", "Ana", "ana@school.edu")
	_, err := f.rosters.SaveRoster(f.ctx, instructorSess, []string{"s1", "ghost"})
	require.NoError(t, err)

	var buf bytes.Buffer
	svc := NewExportService(f.rosters, nil)
	require.NoError(t, svc.ExportRoster(f.ctx, instructorSess, "csv", &buf))
	assert.Equal(t, "Name,Email,Year Level,Course,Status\nAna,ana@school.edu,Not Set,Not Set,pending\n", buf.String())

	err = svc.ExportRoster(f.ctx, instructorSess, "pdf", &buf)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPublishRosterUploadsAndPresigns(t *testing.T) {
	f := newFixture(t)
	f.seedStudent(t, "s1", "Ana", "ana@school.edu")
	_, err := f.rosters.SaveRoster(f.ctx, instructorSess, []string{"s1"})
	require.NoError(t, err)

	store := newFakeStorage()
	svc := NewExportService(f.rosters, store)
	published, err := svc.PublishRoster(f.ctx, instructorSess, "xlsx")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^exports/inst-1/[0-9a-f-]{36}\.xlsx$`), published.ObjectKey)
	assert.Contains(t, published.DownloadURL, published.ObjectKey)
	assert.Equal(t, "xlsx", published.Format)
	require.Contains(t, store.objects, published.ObjectKey)
	assert.NotEmpty(t, store.objects[published.ObjectKey])
	assert.Contains(t, store.types[published.ObjectKey], "spreadsheetml")
}

func TestPublishRosterFailures(t *testing.T) {
	f := newFixture(t)

	_, err := NewExportService(f.rosters, nil).PublishRoster(f.ctx, instructorSess, "csv")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	store := newFakeStorage()
	store.putErr = errors.New("bucket gone")
	_, err = NewExportService(f.rosters, store).PublishRoster(f.ctx, instructorSess, "csv")
	assert.ErrorIs(t, err, ErrWriteFailed)

	_, err = NewExportService(f.rosters, store).PublishRoster(f.ctx, studentSess, "csv")
	assert.ErrorIs(t, err, ErrInstructorOnly)
}

func TestPublishRosterRemovesObjectWhenPresignFails(t *testing.T) {
	f := newFixture(t)
	f.seedStudent(t, "s1", "Ana", "ana@school.edu")
	_, err := f.rosters.SaveRoster(f.ctx, instructorSess, []string{"s1"})
	require.NoError(t, err)

	store := newFakeStorage()
	store.signErr = errors.New("signer down")
	_, err = NewExportService(f.rosters, store).PublishRoster(f.ctx, instructorSess, "csv")
	require.Error(t, err)
	assert.Empty(t, store.objects)
}
