package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	apperrors "campusnotes/internal/errors"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
	"campusnotes/internal/storage"
)

// UploadInput carries a validated upload request into the service layer.
type UploadInput struct {
	Title       string
	TradeID     uint
	SubjectID   uint
	Semester    int
	Year        int // PYQs only
	ContentType string
	File        io.Reader
	UploadedBy  uint
}

// fileTypeFor maps an upload content type to the stored file type, rejecting
// everything outside the PDF/JPEG allow-list.
func fileTypeFor(contentType string) (fileType, ext string, err error) {
	switch contentType {
	case "application/pdf":
		return model.FileTypePDF, ".pdf", nil
	case "image/jpeg":
		return model.FileTypeJPEG, ".jpg", nil
	default:
		return "", "", apperrors.ErrUnsupportedFileType
	}
}

// NoteService exposes note listing, upload, and deletion.
type NoteService interface {
	List(ctx context.Context, tradeCode string, semester int) ([]model.Note, error)
	Upload(ctx context.Context, input UploadInput) (*model.Note, error)
	Delete(ctx context.Context, id uint, adminCode string) error
}

type noteService struct {
	repo            repository.NoteRepository
	trades          repository.TradeRepository
	subjects        repository.SubjectRepository
	blobs           storage.BlobStore
	adminDeleteCode string
}

// NewNoteService builds a NoteService.
func NewNoteService(
	repo repository.NoteRepository,
	trades repository.TradeRepository,
	subjects repository.SubjectRepository,
	blobs storage.BlobStore,
	adminDeleteCode string,
) NoteService {
	return &noteService{
		repo:            repo,
		trades:          trades,
		subjects:        subjects,
		blobs:           blobs,
		adminDeleteCode: adminDeleteCode,
	}
}

// List returns notes filtered by trade code and semester. An unknown trade
// code yields an empty list, not an error, matching how the client probes
// dropdown combinations.
func (s *noteService) List(ctx context.Context, tradeCode string, semester int) ([]model.Note, error) {
	filter := repository.ResourceFilter{Semester: semester}

	if tradeCode != "" {
		trade, err := s.trades.FindByCode(ctx, tradeCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.Note{}, nil
			}
			return nil, fmt.Errorf("find trade: %w", err)
		}
		filter.TradeID = trade.ID
	}

	return s.repo.List(ctx, filter)
}

// Upload stores the binary in blob storage and persists the note record.
func (s *noteService) Upload(ctx context.Context, input UploadInput) (*model.Note, error) {
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

	key := storage.ObjectKey("notes", ext)
	url, err := s.blobs.Upload(ctx, key, input.File, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	note := &model.Note{
		Title:        input.Title,
		TradeID:      input.TradeID,
		SubjectID:    input.SubjectID,
		Semester:     input.Semester,
		FileURL:      url,
		FileKey:      key,
		FileType:     fileType,
		UploadedByID: input.UploadedBy,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		// The record is the source of truth; an orphaned blob is only
		// wasted space, so clean it up best-effort.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			slog.Warn("orphaned blob after failed note insert", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create note: %w", err)
	}

	return s.repo.FindByID(ctx, note.ID)
}

// Delete removes a note after checking the admin verification code. The blob
// is deleted best-effort; a storage failure does not resurrect the record.
func (s *noteService) Delete(ctx context.Context, id uint, adminCode string) error {
	if adminCode != s.adminDeleteCode {
		return apperrors.ErrInvalidAdminCode
	}

	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("find note: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if note.FileKey != "" {
		if err := s.blobs.Delete(ctx, note.FileKey); err != nil {
			slog.Warn("blob deletion failed", "key", note.FileKey, "error", err)
		}
	}
	return nil
}
