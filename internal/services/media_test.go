package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*MediaStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	os.Setenv("MEDIA_BASE_URL", server.URL)
	os.Setenv("CLOUD_API_KEY", "test-key")
	os.Setenv("CLOUD_API_SECRET", "test-secret")
	t.Cleanup(func() { os.Unsetenv("MEDIA_BASE_URL") })

	return NewMediaStore(), server
}

func TestUpload(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/upload" {
			t.Errorf("Expected /image/upload, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("ParseMultipartForm failed: %v", err)
		}
		if r.FormValue("api_key") != "test-key" {
			t.Errorf("api_key = %q, want test-key", r.FormValue("api_key"))
		}
		if r.FormValue("folder") != "user_posts" {
			t.Errorf("folder = %q, want user_posts", r.FormValue("folder"))
		}
		if r.FormValue("signature") == "" {
			t.Error("signature missing")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile failed: %v", err)
		}
		file.Close()
		if header.Filename != "cat.jpg" {
			t.Errorf("filename = %q, want cat.jpg", header.Filename)
		}

		json.NewEncoder(w).Encode(UploadResult{
			SecureURL: "https://cdn.example.com/user_posts/abc.jpg",
			PublicID:  "user_posts/abc",
		})
	})

	result, err := store.Upload([]byte("fake image bytes"), "cat.jpg")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.SecureURL != "https://cdn.example.com/user_posts/abc.jpg" {
		t.Errorf("SecureURL = %q", result.SecureURL)
	}
	if result.PublicID != "user_posts/abc" {
		t.Errorf("PublicID = %q", result.PublicID)
	}
}

func TestUploadServerError(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	if _, err := store.Upload([]byte("bytes"), "cat.jpg"); err == nil {
		t.Error("Expected error on 400 response")
	}
}

func TestUploadIncompleteResult(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(UploadResult{SecureURL: "https://cdn.example.com/x.jpg"})
	})

	if _, err := store.Upload([]byte("bytes"), "cat.jpg"); err == nil {
		t.Error("Expected error when public_id missing")
	}
}

func TestUploadRemote(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		if r.FormValue("file") != "https://elsewhere.example.com/pic.png" {
			t.Errorf("file = %q", r.FormValue("file"))
		}
		json.NewEncoder(w).Encode(UploadResult{
			SecureURL: "https://cdn.example.com/user_posts/def.jpg",
			PublicID:  "user_posts/def",
		})
	})

	result, err := store.UploadRemote("https://elsewhere.example.com/pic.png")
	if err != nil {
		t.Fatalf("UploadRemote failed: %v", err)
	}
	if result.PublicID != "user_posts/def" {
		t.Errorf("PublicID = %q", result.PublicID)
	}
}

func TestDestroy(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/destroy" {
			t.Errorf("Expected /image/destroy, got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		if r.FormValue("public_id") != "user_posts/abc" {
			t.Errorf("public_id = %q", r.FormValue("public_id"))
		}
		json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	})

	if err := store.Destroy("user_posts/abc"); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
}

func TestDestroyNotFound(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": "not found"})
	})

	if err := store.Destroy("user_posts/missing"); err == nil {
		t.Error("Expected error on non-ok result")
	}
}

func TestSignDeterministic(t *testing.T) {
	store := &MediaStore{apiSecret: "s3cret"}
	a := store.sign("folder=user_posts&timestamp=100")
	b := store.sign("folder=user_posts&timestamp=100")
	if a != b {
		t.Error("Signature should be deterministic")
	}
	if a == store.sign("folder=user_posts&timestamp=101") {
		t.Error("Different params should sign differently")
	}
	if len(a) != 40 {
		t.Errorf("SHA-1 hex should be 40 chars, got %d", len(a))
	}
}
