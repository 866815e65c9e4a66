package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"law_folder_app_go/models"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorageProvider is a mock implementation of StorageProvider
type MockStorageProvider struct {
	mock.Mock
}

func (m *MockStorageProvider) Put(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	args := m.Called(ctx, reader, key, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StorageResult), args.Error(1)
}

func (m *MockStorageProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageProvider) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockStorageProvider) SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func (m *MockStorageProvider) Name() string { return "mock" }

func createMockFileHeader(filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(MaxUploadSize * 2)
	return form.File["file"][0]
}

func TestValidateDocumentUpload(t *testing.T) {
	t.Run("valid PDF", func(t *testing.T) {
		content := append([]byte("%PDF-1.4\n"), make([]byte, 100)...)
		assert.NoError(t, ValidateDocumentUpload(createMockFileHeader("petition.pdf", content)))
	})

	t.Run("valid DOCX", func(t *testing.T) {
		content := append([]byte("PK\x03\x04"), make([]byte, 100)...)
		assert.NoError(t, ValidateDocumentUpload(createMockFileHeader("contract.DOCX", content)))
	})

	t.Run("file too large", func(t *testing.T) {
		err := ValidateDocumentUpload(createMockFileHeader("large.pdf", make([]byte, MaxUploadSize+1)))
		assert.ErrorIs(t, err, ErrInvalidUpload)
		assert.Contains(t, err.Error(), "exceeds maximum")
	})

	t.Run("invalid extension", func(t *testing.T) {
		err := ValidateDocumentUpload(createMockFileHeader("tool.exe", []byte("fake")))
		assert.ErrorIs(t, err, ErrInvalidUpload)
		assert.Contains(t, err.Error(), "file type not allowed")
	})

	t.Run("PDF extension with text content", func(t *testing.T) {
		err := ValidateDocumentUpload(createMockFileHeader("fake.pdf", []byte("just text")))
		assert.ErrorIs(t, err, ErrInvalidUpload)
	})
}

func TestDocumentUploadAndOpen(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db, "Docs Client")
	folder := createTestFolder(t, db, client.ID, nil)
	svc := NewDocumentService(db, NewLocalStorage(t.TempDir()))
	ctx := context.Background()

	doc, err := svc.Upload(ctx, folder.ID, createMockFileHeader("Notes.TXT", []byte("hearing notes")), "evidence", nil)
	require.NoError(t, err)
	assert.Equal(t, "Notes.TXT", doc.FileOriginalName)
	assert.True(t, strings.HasPrefix(doc.FilePath, "folders/"+folder.ID+"/documents/"))
	assert.True(t, strings.HasSuffix(doc.FilePath, ".txt"))
	assert.Equal(t, int64(len("hearing notes")), doc.FileSize)
	assert.Equal(t, "/api/folders/"+folder.ID+"/documents/"+doc.ID, doc.GetDownloadURL())

	docs, err := svc.ListByFolder(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	got, err := svc.Get(ctx, folder.ID, doc.ID)
	require.NoError(t, err)

	reader, _, err := svc.Open(ctx, got)
	require.NoError(t, err)
	defer reader.Close()
	content, _ := io.ReadAll(reader)
	assert.Equal(t, "hearing notes", string(content))

	url, err := svc.SignedURL(ctx, got)
	require.NoError(t, err)
	assert.Empty(t, url)

	t.Run("document of another folder is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, "other-folder", doc.ID)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("deleted folder rejects uploads", func(t *testing.T) {
		_, err := NewFolderService(db).DeleteFolder(ctx, folder.ID)
		require.NoError(t, err)
		_, err = svc.Upload(ctx, folder.ID, createMockFileHeader("late.txt", []byte("x")), "", nil)
		assert.ErrorIs(t, err, ErrFolderNotFound)
	})
}

func TestDocumentUploadRemovesOrphanOnInsertFailure(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db, "Orphan Client")
	folder := createTestFolder(t, db, client.ID, nil)

	storage := new(MockStorageProvider)
	storage.On("Put", mock.Anything, mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Return(&StorageResult{Key: "folders/x/documents/a.txt", FileName: "a.txt", FileSize: 1}, nil)
	storage.On("Delete", mock.Anything, "folders/x/documents/a.txt").Return(nil)

	require.NoError(t, db.Migrator().DropTable(&models.FolderDocument{}))

	svc := NewDocumentService(db, storage)
	_, err := svc.Upload(context.Background(), folder.ID, createMockFileHeader("a.txt", []byte("a")), "", nil)
	assert.Error(t, err)
	storage.AssertExpectations(t)
}

func TestDocumentUploadStorageFailure(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db, "Failing Client")
	folder := createTestFolder(t, db, client.ID, nil)

	storage := new(MockStorageProvider)
	storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("bucket unavailable"))

	svc := NewDocumentService(db, storage)
	_, err := svc.Upload(context.Background(), folder.ID, createMockFileHeader("a.txt", []byte("a")), "", nil)
	assert.Error(t, err)

	var count int64
	db.Model(&models.FolderDocument{}).Count(&count)
	assert.Zero(t, count)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
