package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/emreakn/researchdesk/internal/pkg/logger"
)

// Allowed attachment extensions, matching what the upload form accepts.
var allowedExtensions = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	".pdf": true, ".xlsx": true, ".xls": true, ".doc": true, ".docx": true,
}

// MaxAttachmentSize limits a single uploaded attachment to 10MB.
const MaxAttachmentSize = 10 << 20

// ErrInvalidFileType is returned when an uploaded file has a disallowed extension.
var ErrInvalidFileType = fmt.Errorf("invalid file type")

// ErrFileTooLarge is returned when an uploaded file exceeds MaxAttachmentSize.
var ErrFileTooLarge = fmt.Errorf("file exceeds maximum size")

// LocalStorage handles saving uploaded attachments to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveFile stores an uploaded attachment under a unique filename and returns
// the stored filename. The original filename is kept only in its extension.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	ext := filepath.Ext(fileHeader.Filename)
	if !allowedExtensions[ext] {
		return "", ErrInvalidFileType
	}
	if fileHeader.Size > MaxAttachmentSize {
		return "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Generate a unique filename to prevent collisions
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("Attachment saved")
	return uniqueFilename, nil
}

// DeleteFile removes a stored attachment by its stored filename.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(storedName string) error {
	if storedName == "" {
		return nil // Nothing to delete
	}

	filename := filepath.Base(storedName)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file name: %s", storedName)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil // Idempotent delete
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// BasePath returns the directory attachments are stored under.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
