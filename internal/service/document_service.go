package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/storage"
)

// DocumentService attaches files to quotes. Blobs live in the configured
// storage backend; the database keeps only their metadata.
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	quoteRepo    *repository.QuoteRepository
	store        storage.Storage
	maxSizeBytes int64
	logger       *zap.Logger
}

func NewDocumentService(
	documentRepo *repository.DocumentRepository,
	quoteRepo *repository.QuoteRepository,
	store storage.Storage,
	maxUploadSizeMB int64,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		quoteRepo:    quoteRepo,
		store:        store,
		maxSizeBytes: maxUploadSizeMB * 1024 * 1024,
		logger:       logger,
	}
}

// Upload stores the blob and records its metadata against the quote. The
// reader is capped at the configured upload limit.
func (s *DocumentService) Upload(ctx context.Context, quoteID uuid.UUID, fileName, contentType string, data io.Reader) (*domain.DocumentDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	limited := &limitedReader{r: data, remaining: s.maxSizeBytes}
	key, size, err := s.store.Save(ctx, fileName, contentType, limited)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			return nil, fmt.Errorf("%w: file exceeds the %d byte upload limit", ErrInvalidInput, s.maxSizeBytes)
		}
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &domain.Document{
		QuoteID:      quoteID,
		FileName:     fileName,
		ContentType:  contentType,
		SizeBytes:    size,
		StorageKey:   key,
		UploadedByID: changedBy(ctx),
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		// Metadata write failed; don't leave the blob orphaned
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned blob",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("quote_id", quoteID.String()),
		zap.String("file_name", fileName),
		zap.Int64("size_bytes", size))

	dto := mapper.ToDocumentDTO(doc)
	return &dto, nil
}

// Download opens the blob stream alongside its metadata. The caller must
// close the returned reader.
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*domain.DocumentDTO, io.ReadCloser, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get document: %w", err)
	}

	body, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open document blob: %w", err)
	}

	dto := mapper.ToDocumentDTO(doc)
	return &dto, body, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	// Blob removal after the metadata row; a stray blob is preferable to a
	// dangling metadata row
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		s.logger.Warn("failed to delete document blob",
			zap.String("key", doc.StorageKey), zap.Error(err))
	}

	s.logger.Info("document deleted", zap.String("document_id", id.String()))
	return nil
}

func (s *DocumentService) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.DocumentDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	docs, err := s.documentRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	dtos := make([]domain.DocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = mapper.ToDocumentDTO(&docs[i])
	}
	return dtos, nil
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

// limitedReader fails the stream once the upload limit is crossed instead
// of silently truncating it
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, errUploadTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errUploadTooLarge
	}
	return n, err
}
