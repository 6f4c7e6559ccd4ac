package domain

import "errors"

var (
	ErrEmptyDocument       = errors.New("document buffer is empty")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoItems             = errors.New("no items selected for label generation")
	ErrUploadFailed        = errors.New("artifact upload to storage failed")
)
