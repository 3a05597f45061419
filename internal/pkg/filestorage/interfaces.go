package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations. The
// repository layer only ever stores and returns the reference paths this
// interface hands back; it never opens the file content.
type FileStorage interface {
	// SaveFile saves a file and returns the reference path where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file reference
	GetFullPath(fileURL string) string
}
