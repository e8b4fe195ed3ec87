package services

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const mediaFolder = "user_posts"

// UploadResult is what callers keep per stored asset: the serving URL
// and the handle needed to destroy it later.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

// MediaStore uploads post images to the Cloudinary-style media CDN and
// destroys them by public id. Requests are signed with the API secret.
type MediaStore struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewMediaStore reads credentials from the environment. MEDIA_BASE_URL
// overrides the endpoint (used by tests).
func NewMediaStore() *MediaStore {
	base := os.Getenv("MEDIA_BASE_URL")
	if base == "" {
		base = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s", os.Getenv("CLOUD_NAME"))
	}
	return &MediaStore{
		baseURL:   base,
		apiKey:    os.Getenv("CLOUD_API_KEY"),
		apiSecret: os.Getenv("CLOUD_API_SECRET"),
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// sign produces the request signature: SHA-1 over the sorted params
// string with the secret appended.
func (m *MediaStore) sign(params string) string {
	sum := sha1.Sum([]byte(params + m.apiSecret))
	return hex.EncodeToString(sum[:])
}

// Upload sends image bytes to the CDN and returns its remote handle.
func (m *MediaStore) Upload(data []byte, filename string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}

	fields := map[string]string{
		"api_key":   m.apiKey,
		"folder":    mediaFolder,
		"timestamp": timestamp,
		"signature": m.sign(fmt.Sprintf("folder=%s&timestamp=%s", mediaFolder, timestamp)),
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("build upload body: %w", err)
		}
	}
	writer.Close()

	req, err := http.NewRequest("POST", m.baseURL+"/image/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media upload failed: status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("media upload returned incomplete result")
	}
	return &result, nil
}

// UploadRemote asks the CDN to fetch an image from a URL the user
// pasted instead of uploading bytes.
func (m *MediaStore) UploadRemote(remoteURL string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("file", remoteURL)
	form.Set("api_key", m.apiKey)
	form.Set("folder", mediaFolder)
	form.Set("timestamp", timestamp)
	form.Set("signature", m.sign(fmt.Sprintf("folder=%s&timestamp=%s", mediaFolder, timestamp)))

	resp, err := m.client.PostForm(m.baseURL+"/image/upload", form)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media upload failed: status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("media upload returned incomplete result")
	}
	return &result, nil
}

// Destroy removes a remote asset. Callers treat failures as
// best-effort: an orphaned asset is preferable to losing row data.
func (m *MediaStore) Destroy(publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", m.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", m.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	resp, err := m.client.PostForm(m.baseURL+"/image/destroy", form)
	if err != nil {
		return fmt.Errorf("destroy request: %w", err)
	}
	defer resp.Body.Close()

	var dr destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("parse destroy response: %w", err)
	}
	if dr.Result != "ok" {
		return fmt.Errorf("media destroy failed: %s", dr.Result)
	}
	return nil
}
