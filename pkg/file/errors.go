package file

import "errors"

var (
	// Handle errors
	ErrNilFileHeader = errors.New("file header is nil")
	ErrAlreadyMoved  = errors.New("file has already been moved") // One-time move
	ErrNotRegular    = errors.New("path is not a regular file")
	ErrEmptyPath     = errors.New("destination path is empty")

	// Request errors
	ErrNotMultipart           = errors.New("request is not multipart/form-data")
	ErrFailedToParseMultipart = errors.New("failed to parse multipart form")

	// I/O operation errors - wrapped with context for debugging
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToMoveFile        = errors.New("failed to move file")

	// Hashing errors
	ErrUnknownHash      = errors.New("unknown hash algorithm")
	ErrFailedToHashFile = errors.New("failed to hash file")
)
