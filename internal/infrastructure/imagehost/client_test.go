package imagehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/socialdash/dashboard-api/internal/core/ports"
)

func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("upload_preset"); got != "dash_unsigned" {
			t.Fatalf("unexpected preset: %q", got)
		}
		if got := r.FormValue("folder"); got != "user_posts" {
			t.Fatalf("unexpected folder: %q", got)
		}
		if got := r.FormValue("public_id"); got != "user1_123" {
			t.Fatalf("unexpected public id: %q", got)
		}

		f, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example.com/user_posts/user1_123","public_id":"user_posts/user1_123","bytes":16}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{Endpoint: srv.URL, Preset: "dash_unsigned"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := client.Upload(context.Background(), []byte("fake-image-bytes"), ports.UploadOptions{
		Folder:   "user_posts",
		PublicID: "user1_123",
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if result.SecureURL != "https://img.example.com/user_posts/user1_123" {
		t.Fatalf("unexpected url: %q", result.SecureURL)
	}
	if result.Bytes != 16 {
		t.Fatalf("unexpected bytes: %d", result.Bytes)
	}
}

func TestClient_Upload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{Endpoint: srv.URL, Preset: "wrong"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := client.Upload(context.Background(), []byte("x"), ports.UploadOptions{}); err == nil {
		t.Fatalf("expected error from host")
	}
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
