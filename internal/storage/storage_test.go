package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSaveImageRoundTrip(t *testing.T) {
	svc := NewService(t.TempDir(), "/static")

	data := []byte{0x89, 'P', 'N', 'G', 0x01, 0x02, 0x03, 0xFF, 0x00, 0x7A}
	url, err := svc.SaveImage(42, "nature", data)
	if err != nil {
		t.Fatalf("SaveImage returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/static/gallery/") {
		t.Fatalf("unexpected url: %s", url)
	}

	stored, err := svc.Read(url)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !bytes.Equal(stored, data) {
		t.Fatal("stored bytes differ from input")
	}
}

func TestSaveImageSanitizesTheme(t *testing.T) {
	svc := NewService(t.TempDir(), "/static")

	url, err := svc.SaveImage(1, "../../etc", []byte{1})
	if err != nil {
		t.Fatalf("SaveImage returned error: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("theme not sanitized: %s", url)
	}
}

func TestReadRejectsForeignURL(t *testing.T) {
	svc := NewService(t.TempDir(), "/static")
	if _, err := svc.Read("https://example.com/x.png"); err == nil {
		t.Fatal("expected error for unmanaged url")
	}
	if _, err := svc.Read("/static/../secret"); err == nil {
		t.Fatal("expected error for traversal url")
	}
}

func TestDownload(t *testing.T) {
	payload := []byte("image-bytes")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	svc := NewService(t.TempDir(), "/static")
	data, err := svc.Download(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatal("downloaded bytes differ")
	}
}

func TestDownloadRejectsBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	svc := NewService(t.TempDir(), "/static")
	if _, err := svc.Download(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
