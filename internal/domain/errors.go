package domain

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDirectoryNotFound   = errors.New("directory not found")
	ErrVendorUnavailable   = errors.New("vendor client not available")
	ErrProcessorIDRequired = errors.New("google processor id is required")
	ErrNoResults           = errors.New("no comparison results recorded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
