package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"law_folder_app_go/models"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
)

const MaxUploadSize = 10 * 1024 * 1024 // 10MB

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidUpload    = errors.New("invalid upload")
)

var allowedDocumentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
	".jpg": true, ".jpeg": true, ".png": true,
}

// ValidateDocumentUpload checks size and extension of an uploaded document
func ValidateDocumentUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxUploadSize {
		return fmt.Errorf("%w: file size exceeds maximum allowed size of 10MB", ErrInvalidUpload)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedDocumentExtensions[ext] {
		return fmt.Errorf("%w: file type not allowed. Accepted formats: PDF, DOC, DOCX, TXT, JPG, PNG", ErrInvalidUpload)
	}

	// PDFs must carry the %PDF signature
	if ext == ".pdf" {
		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer file.Close()

		head := make([]byte, 4)
		if n, err := io.ReadFull(file, head); err != nil || n < 4 || string(head) != "%PDF" {
			return fmt.Errorf("%w: file is not a valid PDF", ErrInvalidUpload)
		}
	}

	return nil
}

// DocumentService attaches files to folders
type DocumentService struct {
	db      *gorm.DB
	storage StorageProvider
	folders *FolderService
}

// NewDocumentService creates a document service backed by storage
func NewDocumentService(db *gorm.DB, storage StorageProvider) *DocumentService {
	return &DocumentService{db: db, storage: storage, folders: NewFolderService(db)}
}

// Upload validates and stores a file, then records it on a live folder
func (s *DocumentService) Upload(ctx context.Context, folderID string, fileHeader *multipart.FileHeader, documentType string, uploadedByID *string) (*models.FolderDocument, error) {
	folder, err := s.folders.GetFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocumentUpload(fileHeader); err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFor(fileHeader.Filename)
	}

	key := GenerateFolderDocumentKey(folder.ID, fileHeader.Filename)
	stored, err := s.storage.Put(ctx, src, key, contentType, fileHeader.Size)
	if err != nil {
		return nil, err
	}

	doc := models.FolderDocument{
		FolderID:         folder.ID,
		FileName:         stored.FileName,
		FileOriginalName: filepath.Base(fileHeader.Filename),
		FilePath:         stored.Key,
		FileSize:         stored.FileSize,
		MimeType:         contentType,
		DocumentType:     documentType,
		UploadedByID:     uploadedByID,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		// do not leave an orphan object behind
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			log.Printf("[WARNING] Failed to remove orphan upload %s: %v", stored.Key, delErr)
		}
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	auditFromContext(ctx, s.db, models.AuditActionUpload, models.AuditResourceDocument,
		doc.ID, doc.FileOriginalName, "Document uploaded to folder "+folder.Code, nil, nil)

	return &doc, nil
}

// ListByFolder returns the documents of a folder, newest first
func (s *DocumentService) ListByFolder(ctx context.Context, folderID string) ([]models.FolderDocument, error) {
	docs := []models.FolderDocument{}
	err := s.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	return docs, nil
}

// Get returns one document of a folder
func (s *DocumentService) Get(ctx context.Context, folderID, documentID string) (*models.FolderDocument, error) {
	var doc models.FolderDocument
	err := s.db.WithContext(ctx).
		Where("id = ? AND folder_id = ?", documentID, folderID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}

// Open streams a document's content
func (s *DocumentService) Open(ctx context.Context, doc *models.FolderDocument) (io.ReadCloser, string, error) {
	reader, contentType, err := s.storage.Get(ctx, doc.FilePath)
	if err != nil {
		return nil, "", err
	}
	if doc.MimeType != "" {
		contentType = doc.MimeType
	}

	auditFromContext(ctx, s.db, models.AuditActionDownload, models.AuditResourceDocument,
		doc.ID, doc.FileOriginalName, "Document downloaded", nil, nil)

	return reader, contentType, nil
}

// SignedURL returns a temporary direct link when the storage supports it
func (s *DocumentService) SignedURL(ctx context.Context, doc *models.FolderDocument) (string, error) {
	return s.storage.SignedURL(ctx, doc.FilePath, 15*time.Minute)
}
