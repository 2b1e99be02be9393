package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	apperrors "campusnotes/internal/errors"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
	"campusnotes/internal/storage"
)

// PYQService exposes previous-year paper listing, upload, and deletion.
type PYQService interface {
	List(ctx context.Context, filter repository.ResourceFilter) ([]model.PYQ, error)
	Upload(ctx context.Context, input UploadInput) (*model.PYQ, error)
	Delete(ctx context.Context, id uint, adminCode string) error
}

type pyqService struct {
	repo            repository.PYQRepository
	trades          repository.TradeRepository
	subjects        repository.SubjectRepository
	blobs           storage.BlobStore
	adminDeleteCode string
}

// NewPYQService builds a PYQService.
func NewPYQService(
	repo repository.PYQRepository,
	trades repository.TradeRepository,
	subjects repository.SubjectRepository,
	blobs storage.BlobStore,
	adminDeleteCode string,
) PYQService {
	return &pyqService{
		repo:            repo,
		trades:          trades,
		subjects:        subjects,
		blobs:           blobs,
		adminDeleteCode: adminDeleteCode,
	}
}

func (s *pyqService) List(ctx context.Context, filter repository.ResourceFilter) ([]model.PYQ, error) {
	return s.repo.List(ctx, filter)
}

func (s *pyqService) Upload(ctx context.Context, input UploadInput) (*model.PYQ, error) {
	fileType, ext, err := fileTypeFor(input.ContentType)
	if err != nil {
		return nil, err
	}

	if _, err := s.trades.FindByID(ctx, input.TradeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTradeNotFound
		}
		return nil, fmt.Errorf("find trade: %w", err)
	}
	if _, err := s.subjects.FindByID(ctx, input.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}

	key := storage.ObjectKey("pyqs", ext)
	url, err := s.blobs.Upload(ctx, key, input.File, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	pyq := &model.PYQ{
		Title:        input.Title,
		TradeID:      input.TradeID,
		SubjectID:    input.SubjectID,
		Semester:     input.Semester,
		Year:         input.Year,
		FileURL:      url,
		FileKey:      key,
		FileType:     fileType,
		UploadedByID: input.UploadedBy,
	}
	if err := s.repo.Create(ctx, pyq); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			slog.Warn("orphaned blob after failed pyq insert", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create pyq: %w", err)
	}

	return s.repo.FindByID(ctx, pyq.ID)
}

func (s *pyqService) Delete(ctx context.Context, id uint, adminCode string) error {
	if adminCode != s.adminDeleteCode {
		return apperrors.ErrInvalidAdminCode
	}

	pyq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("find pyq: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete pyq: %w", err)
	}

	if pyq.FileKey != "" {
		if err := s.blobs.Delete(ctx, pyq.FileKey); err != nil {
			slog.Warn("blob deletion failed", "key", pyq.FileKey, "error", err)
		}
	}
	return nil
}
