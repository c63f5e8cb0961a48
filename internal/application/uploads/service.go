package uploads

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"portfolio-backend/internal/domain"
)

// Storage defines what we need from Supabase storage.
type Storage interface {
	CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error)
	Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error
}

// HTTPClient is a Storage backed by the Supabase Storage HTTP API.
type HTTPClient struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

type supabaseSignedUploadResponse struct {
	SignedURL      string `json:"signedUrl"`
	SignedURLSnake string `json:"signed_url"`
	URL            string `json:"url"` // relative path returned by upload/sign API
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	return c.Client
}

func (c *HTTPClient) check() error {
	if c.BaseURL == "" {
		return fmt.Errorf("supabase: SUPABASE_URL is not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("supabase: SUPABASE_SECRET_KEY is not set")
	}
	return nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	req.Header.Set("apikey", c.SecretKey)
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
}

func (c *HTTPClient) CreateSignedUploadURL(ctx context.Context, bucket, objectPath string) (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}
	base := strings.TrimRight(c.BaseURL, "/")
	url := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s", base, bucket, objectPath)

	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"expiresIn": 3600,
		"upsert":    false,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", storageError(resp.StatusCode, respBody)
	}

	var data supabaseSignedUploadResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("supabase response decode: %w", err)
	}
	if data.SignedURL != "" {
		return data.SignedURL, nil
	}
	if data.SignedURLSnake != "" {
		return data.SignedURLSnake, nil
	}
	if data.URL != "" {
		u := data.URL
		if u[0] != '/' {
			u = "/" + u
		}
		if !strings.HasPrefix(u, "/storage/v1") {
			u = "/storage/v1" + u
		}
		return base + u, nil
	}
	return "", fmt.Errorf("supabase returned no signed URL, body: %s", string(respBody))
}

// Upload stores body at bucket/path. Objects are never overwritten (x-upsert: false).
func (c *HTTPClient) Upload(ctx context.Context, bucket, objectPath, contentType string, body io.Reader) error {
	if err := c.check(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(c.BaseURL, "/"), bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return storageError(resp.StatusCode, respBody)
	}
	return nil
}

func storageError(status int, body []byte) error {
	s := string(body)
	if (status == 400 || status == 403) && (strings.Contains(s, "Invalid Compact JWS") || strings.Contains(s, "Unauthorized")) {
		return fmt.Errorf("supabase storage requires the service_role key, not the anon key (raw body: %s)", s)
	}
	return fmt.Errorf("supabase error: status %d body: %s", status, s)
}

// Service encapsulates upload logic.
type Service struct {
	Client      Storage
	SupabaseURL string
	Bucket      string
}

// UploadResult is returned to browsers that upload directly to storage.
type UploadResult struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Path      string `json:"path"`
}

// Accept decides whether a content type may be stored.
type Accept func(contentType string) bool

// Images accepts image/* only.
func Images(ct string) bool {
	return strings.HasPrefix(ct, "image/")
}

// ImagesOrPDF accepts image/* and application/pdf.
func ImagesOrPDF(ct string) bool {
	return Images(ct) || ct == "application/pdf"
}

// Documents accepts PDF and Word files, used for CVs.
func Documents(ct string) bool {
	switch ct {
	case "application/pdf", "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	}
	return false
}

// PublicURL is the public object URL for objectPath in the configured bucket.
func (s *Service) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimRight(s.SupabaseURL, "/"), s.Bucket, objectPath)
}

// ObjectPath names a new object under folder, keeping the file extension.
func ObjectPath(folder, fileName string, now time.Time) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	name := fmt.Sprintf("%d-%s%s", now.UnixMilli(), hex.EncodeToString(b), strings.ToLower(path.Ext(fileName)))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// GetSignedUploadURL generates a signed upload URL for a browser-side upload.
func (s *Service) GetSignedUploadURL(ctx context.Context, folder, fileName string) (*UploadResult, error) {
	objectPath := ObjectPath(folder, fileName, time.Now())
	signedURL, err := s.Client.CreateSignedUploadURL(ctx, s.Bucket, objectPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return &UploadResult{
		UploadURL: signedURL,
		PublicURL: s.PublicURL(objectPath),
		Path:      objectPath,
	}, nil
}

// UploadFile stores one multipart file under folder and returns its public URL.
// The object is written before any row references it; if the later row write
// fails the object stays orphaned in the bucket.
func (s *Service) UploadFile(ctx context.Context, folder string, fh *multipart.FileHeader, accept Accept) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if accept != nil && !accept(contentType) {
		return "", domain.Invalid(fmt.Sprintf("File type %s is not supported", contentType))
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectPath := ObjectPath(folder, fh.Filename, time.Now())
	if err := s.Client.Upload(ctx, s.Bucket, objectPath, contentType, f); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return s.PublicURL(objectPath), nil
}

// UploadFiles uploads each file in order and returns their public URLs.
func (s *Service) UploadFiles(ctx context.Context, folder string, files []*multipart.FileHeader, accept Accept) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := s.UploadFile(ctx, folder, fh, accept)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
