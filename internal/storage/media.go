// Package storage checks and opens the images attached to the
// complete-information form before they are forwarded to the branch API.
package storage

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/milicode/gym-panel/pkg/gymapi"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrContentTypeRefused = errors.New("content type is not allowed")
)

// DefaultImageTypes are the content types accepted for branch media.
var DefaultImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

type MediaPolicy struct {
	MaxFileBytes int64
	AllowedTypes []string
}

func NewMediaPolicy(maxFileBytes int64) MediaPolicy {
	return MediaPolicy{
		MaxFileBytes: maxFileBytes,
		AllowedTypes: DefaultImageTypes,
	}
}

// ValidateFileSize validates the file size
func (p MediaPolicy) ValidateFileSize(size int64) error {
	if p.MaxFileBytes > 0 && size > p.MaxFileBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, size, p.MaxFileBytes)
	}
	return nil
}

// ValidateContentType validates the content type
func (p MediaPolicy) ValidateContentType(contentType string) error {
	for _, allowed := range p.AllowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrContentTypeRefused, contentType)
}

// Open validates every header and opens the files for upload. The returned
// close function must be called once the upload settled; on error nothing
// is left open.
func (p MediaPolicy) Open(headers []*multipart.FileHeader) ([]gymapi.MediaFile, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]gymapi.MediaFile, 0, len(headers))
	for _, h := range headers {
		contentType := h.Header.Get("Content-Type")
		if err := p.ValidateContentType(contentType); err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("%s: %w", h.Filename, err)
		}
		if err := p.ValidateFileSize(h.Size); err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("%s: %w", h.Filename, err)
		}

		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open %s: %w", h.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, gymapi.MediaFile{
			Filename:    h.Filename,
			ContentType: contentType,
			Content:     f,
		})
	}
	return files, closeAll, nil
}
