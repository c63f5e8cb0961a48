// Package uploadstest provides an in-memory Storage for handler tests.
package uploadstest

import (
	"context"
	"io"
	"sync"
)

// Object is one stored upload.
type Object struct {
	Bucket      string
	Path        string
	ContentType string
	Body        []byte
}

// Storage records uploads instead of sending them.
type Storage struct {
	mu      sync.Mutex
	Objects []Object
	Err     error
}

func (s *Storage) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return "https://storage.test/upload/" + bucket + "/" + path + "?token=t", nil
}

func (s *Storage) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	if s.Err != nil {
		return s.Err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects = append(s.Objects, Object{Bucket: bucket, Path: path, ContentType: contentType, Body: b})
	return nil
}

// Count returns how many objects were stored.
func (s *Storage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}
