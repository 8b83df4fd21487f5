// Package storage is a file-backed blob store for post media. Blobs are
// keyed by generated IDs; the returned reference doubles as a URL path.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// extensions is the allow-list of storable content types.
var extensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
}

// ErrUnsupportedType is returned for content types outside the allow-list.
var ErrUnsupportedType = fmt.Errorf("unsupported media content type")

// MediaStore writes media blobs under a root directory served at /media.
type MediaStore struct {
	dir string
}

// NewMediaStore creates the root directory if needed and returns the store.
func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &MediaStore{dir: dir}, nil
}

// Store writes a blob and returns its generated ID and URL path.
func (s *MediaStore) Store(data []byte, contentType string) (id, url string, err error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", "", ErrUnsupportedType
	}

	id = uuid.NewString()
	name := id + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write media file: %w", err)
	}

	return id, "/media/" + name, nil
}

// Dir returns the root directory, for static file serving.
func (s *MediaStore) Dir() string {
	return s.dir
}

// ParseDataURI decodes a base64 data URI into its content type and payload.
func ParseDataURI(uri string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, found := strings.Cut(uri[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("data URI must be base64 encoded")
	}
	contentType = strings.TrimSuffix(meta, ";base64")

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return contentType, data, nil
}

// IsMediaType reports whether a content type is an image or video.
func IsMediaType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

// IsStorable reports whether Store will accept a content type. Validation
// must use this, not just IsMediaType: a type the store cannot persist has
// to be rejected before any blob is written.
func IsStorable(contentType string) bool {
	_, ok := extensions[contentType]
	return ok
}
