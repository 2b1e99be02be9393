package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "campusnotes/internal/errors"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
)

// MockNoteRepository is a mock implementation of NoteRepository.
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) List(ctx context.Context, filter repository.ResourceFilter) ([]model.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uint) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubjectRepository is a mock implementation of SubjectRepository.
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) List(ctx context.Context, filter repository.SubjectFilter) ([]model.Subject, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subject), args.Error(1)
}

// MockBlobStore is a mock implementation of storage.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

const adminCode = "admin123"

type noteFixture struct {
	repo     *MockNoteRepository
	trades   *MockTradeRepository
	subjects *MockSubjectRepository
	blobs    *MockBlobStore
	svc      NoteService
}

func newNoteFixture() *noteFixture {
	f := &noteFixture{
		repo:     new(MockNoteRepository),
		trades:   new(MockTradeRepository),
		subjects: new(MockSubjectRepository),
		blobs:    new(MockBlobStore),
	}
	f.svc = NewNoteService(f.repo, f.trades, f.subjects, f.blobs, adminCode)
	return f
}

func uploadInput() UploadInput {
	return UploadInput{
		Title:       "Signals and Systems Unit 1",
		TradeID:     1,
		SubjectID:   2,
		Semester:    3,
		ContentType: "application/pdf",
		File:        strings.NewReader("%PDF-1.4"),
		UploadedBy:  7,
	}
}

func TestNoteService_List_FiltersByTradeCode(t *testing.T) {
	f := newNoteFixture()

	f.trades.On("FindByCode", mock.Anything, "GCS").
		Return(&model.Trade{ID: 4, TradeCode: "GCS"}, nil)
	want := []model.Note{{ID: 1, Title: "Unit 1", TradeID: 4, Semester: 3}}
	f.repo.On("List", mock.Anything, repository.ResourceFilter{TradeID: 4, Semester: 3}).
		Return(want, nil)

	notes, err := f.svc.List(context.Background(), "GCS", 3)
	require.NoError(t, err)
	assert.Equal(t, want, notes)
}

func TestNoteService_List_UnknownTradeCodeYieldsEmpty(t *testing.T) {
	f := newNoteFixture()

	f.trades.On("FindByCode", mock.Anything, "XYZ").Return(nil, gorm.ErrRecordNotFound)

	notes, err := f.svc.List(context.Background(), "XYZ", 0)
	require.NoError(t, err)
	assert.Empty(t, notes)
	f.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestNoteService_Upload_Succeeds(t *testing.T) {
	f := newNoteFixture()

	f.trades.On("FindByID", mock.Anything, uint(1)).Return(&model.Trade{ID: 1}, nil)
	f.subjects.On("FindByID", mock.Anything, uint(2)).Return(&model.Subject{ID: 2}, nil)
	f.blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").
		Return("https://blobs.example/notes/x.pdf", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Note).ID = 9
		}).
		Return(nil)
	stored := &model.Note{ID: 9, Title: "Signals and Systems Unit 1", FileType: model.FileTypePDF}
	f.repo.On("FindByID", mock.Anything, uint(9)).Return(stored, nil)

	note, err := f.svc.Upload(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, stored, note)

	f.blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestNoteService_Upload_RejectsUnsupportedType(t *testing.T) {
	f := newNoteFixture()

	input := uploadInput()
	input.ContentType = "image/png"

	_, err := f.svc.Upload(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
	f.blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNoteService_Upload_UnknownTrade(t *testing.T) {
	f := newNoteFixture()

	f.trades.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Upload(context.Background(), uploadInput())
	assert.ErrorIs(t, err, apperrors.ErrTradeNotFound)
	f.blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNoteService_Upload_CleansUpBlobOnInsertFailure(t *testing.T) {
	f := newNoteFixture()

	f.trades.On("FindByID", mock.Anything, uint(1)).Return(&model.Trade{ID: 1}, nil)
	f.subjects.On("FindByID", mock.Anything, uint(2)).Return(&model.Subject{ID: 2}, nil)
	f.blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").
		Return("https://blobs.example/notes/x.pdf", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).
		Return(errors.New("insert failed"))
	f.blobs.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Upload(context.Background(), uploadInput())
	require.Error(t, err)
	f.blobs.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestNoteService_Delete_Succeeds(t *testing.T) {
	f := newNoteFixture()

	f.repo.On("FindByID", mock.Anything, uint(9)).
		Return(&model.Note{ID: 9, FileKey: "notes/2026/08/x.pdf"}, nil)
	f.repo.On("Delete", mock.Anything, uint(9)).Return(nil)
	f.blobs.On("Delete", mock.Anything, "notes/2026/08/x.pdf").Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), 9, adminCode))
	f.repo.AssertExpectations(t)
	f.blobs.AssertExpectations(t)
}

func TestNoteService_Delete_WrongAdminCode(t *testing.T) {
	f := newNoteFixture()

	err := f.svc.Delete(context.Background(), 9, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAdminCode)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestNoteService_Delete_UnknownNote(t *testing.T) {
	f := newNoteFixture()

	f.repo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	err := f.svc.Delete(context.Background(), 9, adminCode)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestNoteService_Delete_BlobFailureDoesNotResurrectRecord(t *testing.T) {
	f := newNoteFixture()

	f.repo.On("FindByID", mock.Anything, uint(9)).
		Return(&model.Note{ID: 9, FileKey: "notes/2026/08/x.pdf"}, nil)
	f.repo.On("Delete", mock.Anything, uint(9)).Return(nil)
	f.blobs.On("Delete", mock.Anything, mock.Anything).Return(errors.New("storage down"))

	assert.NoError(t, f.svc.Delete(context.Background(), 9, adminCode))
}
