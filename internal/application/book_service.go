package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jucamargo/juju-library/internal/domain/entity"
	repo "github.com/jucamargo/juju-library/internal/domain/repository"
	"github.com/jucamargo/juju-library/pkg/helpers"
)

// Normalize is the canonical text normalization for titles and authors:
// surrounding whitespace trimmed, then upper-cased. It is idempotent.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// BookService holds the catalogue business logic. Postgres is the authority;
// Elasticsearch, when configured, mirrors the catalogue for external
// consumers and is updated best-effort. GCS stores cover images.
type BookService struct {
	Repo         repo.BookRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESBooksIndex string
	GCS          *storage.Client
	GCSBucket    string
}

func NewBookService(r repo.BookRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *BookService {
	return &BookService{
		Repo:         r,
		Logger:       logger,
		ES:           es,
		ESBooksIndex: esIndex,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
	}
}

// Create normalizes title and author and persists the book as available.
func (s *BookService) Create(ctx context.Context, title, author, year string) (*entity.Book, error) {
	b := &entity.Book{
		Title:  Normalize(title),
		Author: Normalize(author),
		Year:   year,
		Status: true,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	_ = s.indexBook(ctx, b)
	return b, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*entity.Book, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]*entity.Book, error) {
	return s.Repo.List(ctx)
}

// Search matches the fragment case-insensitively as a substring of the
// stored (upper-cased) titles. The result may be empty.
func (s *BookService) Search(ctx context.Context, fragment string) ([]*entity.Book, error) {
	return s.Repo.SearchByTitle(ctx, Normalize(fragment))
}

// Update re-normalizes and overwrites title, author and year.
func (s *BookService) Update(ctx context.Context, id, title, author, year string) (*entity.Book, error) {
	b := &entity.Book{
		ID:     id,
		Title:  Normalize(title),
		Author: Normalize(author),
		Year:   year,
	}
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	_ = s.indexBook(ctx, b)
	return b, nil
}

// UpdateStatus overwrites only the availability flag.
func (s *BookService) UpdateStatus(ctx context.Context, id string, status bool) (*entity.Book, error) {
	b, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	_ = s.indexBook(ctx, b)
	return b, nil
}

// Delete removes the book and returns the pre-deletion snapshot.
func (s *BookService) Delete(ctx context.Context, id string) (*entity.Book, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.removeFromIndex(ctx, id)
	return b, nil
}

// UploadCover stores a cover image in GCS and records its public URL.
func (s *BookService) UploadCover(ctx context.Context, id string, r io.Reader, filename, contentType string) (*entity.Book, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", id, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetCoverURL(ctx, id, url); err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.indexBook(ctx, b)
	return b, nil
}

func (s *BookService) indexBook(ctx context.Context, b *entity.Book) error {
	if s.ES == nil || s.ESBooksIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         b.ID,
		"title":      b.Title,
		"author":     b.Author,
		"year":       b.Year,
		"status":     b.Status,
		"cover_url":  b.CoverURL,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESBooksIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("book_id", b.ID).Warn("es index response error")
	}
	return nil
}

func (s *BookService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESBooksIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
