package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseDir    = "./uploads"
	DefaultStaticBase = "/static"

	maxDownloadSize = 25 * 1024 * 1024
)

// Service persists generated images on local disk and serves them back under
// a public static URL. Files are written verbatim so a stored image reads back
// byte-identical.
type Service struct {
	baseDir    string
	staticBase string
	client     *http.Client
}

func NewService(baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if staticBase == "" {
		staticBase = DefaultStaticBase
	}
	return &Service{
		baseDir:    baseDir,
		staticBase: staticBase,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// SaveImage writes image bytes under the gallery directory and returns the
// public URL a browser can fetch them from.
func (s *Service) SaveImage(userID int64, theme string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, "gallery")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create gallery directory: %w", err)
	}

	shortID := strings.SplitN(uuid.NewString(), "-", 2)[0]
	filename := fmt.Sprintf("%d_%s_%d_%s.png", userID, sanitizeTheme(theme), time.Now().Unix(), shortID)

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return s.staticBase + "/gallery/" + filename, nil
}

// Read returns the stored bytes for a URL previously returned by SaveImage.
func (s *Service) Read(url string) ([]byte, error) {
	rel := strings.TrimPrefix(url, s.staticBase+"/")
	if rel == url || strings.Contains(rel, "..") {
		return nil, fmt.Errorf("not a managed storage url: %s", url)
	}
	return os.ReadFile(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
}

// Download fetches an image from a remote URL, used when the generation API
// returns a link instead of inline data.
func (s *Service) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	return data, nil
}

func sanitizeTheme(theme string) string {
	theme = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, theme)
	if theme == "" {
		return "image"
	}
	return theme
}
