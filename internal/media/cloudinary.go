// Package media uploads product images to Cloudinary via its
// unsigned upload endpoint.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// CloudinaryUploader posts images to the unsigned upload endpoint of
// a Cloudinary account and returns the hosted URL.
type CloudinaryUploader struct {
	CloudName    string
	UploadPreset string
	BaseURL      string // overridable in tests
	Client       *http.Client
}

func NewCloudinaryUploader(cloudName, uploadPreset string) *CloudinaryUploader {
	return &CloudinaryUploader{
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		BaseURL:      "https://api.cloudinary.com",
		Client:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sends the image bytes and returns the secure URL Cloudinary
// assigned to them.
func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader) (string, error) {
	if u.CloudName == "" || u.UploadPreset == "" {
		return "", errors.New("cloudinary credentials not configured")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "image")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.WriteField("upload_preset", u.UploadPreset); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", u.BaseURL, u.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary: decode response: %w", err)
	}
	if out.SecureURL == "" {
		return "", errors.New("cloudinary: response missing secure_url")
	}
	return out.SecureURL, nil
}
