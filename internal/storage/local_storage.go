package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidKey is returned for keys that would escape the documents
	// directory (absolute paths, ".." traversal, empty keys).
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrInvalidUploadToken is returned when an upload token is unknown,
	// already used or expired.
	ErrInvalidUploadToken = errors.New("invalid or expired upload token")
)

// LocalStorageService keeps identification documents on the local
// filesystem, serving them through the server's own upload/download
// endpoints with presigned-style URLs. An upload URL carries a one-time
// token bound to its storage key; the upload handler redeems the token and
// never trusts a client-supplied key.
type LocalStorageService struct {
	baseURL      string // Server URL (e.g. "http://localhost:8080")
	uploadsDir   string // Root directory for uploads
	documentsDir string // Subdirectory for identification documents

	mu     sync.Mutex
	grants map[string]uploadGrant
}

type uploadGrant struct {
	key     string
	expires time.Time
}

// NewLocalStorageService creates a new local storage service
func NewLocalStorageService(baseURL, uploadsDir string) (*LocalStorageService, error) {
	documentsDir := filepath.Join(uploadsDir, "documents")

	if err := os.MkdirAll(documentsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	return &LocalStorageService{
		baseURL:      baseURL,
		uploadsDir:   uploadsDir,
		documentsDir: documentsDir,
		grants:       make(map[string]uploadGrant),
	}, nil
}

// GenerateUploadURL generates an upload URL pointing back at the server.
// The token in the path is the capability: one-time, bound to the key and
// expiring with expiresIn.
func (s *LocalStorageService) GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	if _, err := s.documentPath(key); err != nil {
		return "", err
	}

	uploadToken := uuid.New().String()
	s.mu.Lock()
	s.grants[uploadToken] = uploadGrant{key: key, expires: time.Now().Add(expiresIn)}
	s.mu.Unlock()

	return fmt.Sprintf("%s/api/v1/documents/upload/%s?key=%s", s.baseURL, uploadToken, url.QueryEscape(key)), nil
}

// RedeemUploadToken consumes a token minted by GenerateUploadURL and
// returns the storage key it was bound to. A token redeems at most once.
func (s *LocalStorageService) RedeemUploadToken(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant, ok := s.grants[token]
	if !ok {
		return "", ErrInvalidUploadToken
	}
	delete(s.grants, token)
	if time.Now().After(grant.expires) {
		return "", ErrInvalidUploadToken
	}
	return grant.key, nil
}

// GenerateDownloadURL generates a download URL pointing back at the server
func (s *LocalStorageService) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	if _, err := s.documentPath(key); err != nil {
		return "", err
	}
	encodedKey := encodeKey(key)
	return fmt.Sprintf("%s/api/v1/documents/download/%s?key=%s", s.baseURL, encodedKey, url.QueryEscape(key)), nil
}

// FileExists checks if a document exists on the local filesystem
func (s *LocalStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := s.documentPath(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

// DeleteFile deletes a document from the local filesystem
func (s *LocalStorageService) DeleteFile(ctx context.Context, key string) error {
	path, err := s.documentPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SaveFile saves an uploaded document to the local filesystem
func (s *LocalStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath, err := s.documentPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ReadFile reads a document from the local filesystem
func (s *LocalStorageService) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := s.documentPath(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// documentPath resolves a key inside the documents directory, rejecting
// anything that would land outside it.
func (s *LocalStorageService) documentPath(key string) (string, error) {
	if key == "" || !filepath.IsLocal(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.documentsDir, key), nil
}

// encodeKey creates a URL-safe hash of the key
func encodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
