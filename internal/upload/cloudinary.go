// Package upload stores avatar images in Cloudinary and hands back the
// secure URL; only that URL is ever persisted, never the raw bytes.
package upload

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// MaxAvatarSize caps uploaded avatar files at 5MB.
	MaxAvatarSize = 5 << 20

	defaultBaseURL = "https://api.cloudinary.com/v1_1"
)

// ErrUnsupportedType is returned for non-image uploads.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTooLarge is returned when the file exceeds MaxAvatarSize.
var ErrTooLarge = errors.New("file too large (max 5MB)")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Client uploads images to Cloudinary's HTTP upload API.
type Client struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	httpClient *http.Client
}

// New creates an upload client. With empty credentials the client is
// disabled and uploads return an error the callers treat as non-fatal.
func New(cloudName, apiKey, apiSecret, folder string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		folder:     folder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether Cloudinary credentials are configured.
func (c *Client) Enabled() bool {
	return c.cloudName != "" && c.apiKey != "" && c.apiSecret != ""
}

// UploadBuffer uploads image bytes and returns the secure URL. The
// content type is sniffed from the bytes, not trusted from the client.
func (c *Client) UploadBuffer(ctx context.Context, data []byte) (string, error) {
	if !c.Enabled() {
		return "", errors.New("upload client not configured")
	}
	if len(data) > MaxAvatarSize {
		return "", ErrTooLarge
	}
	if !allowedTypes[mimetype.Detect(data).String()] {
		return "", ErrUnsupportedType
	}

	params := c.signedParams()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("write field: %w", err)
		}
	}
	part, err := writer.CreateFormFile("file", params["public_id"])
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	return c.post(ctx, &body, writer.FormDataContentType())
}

// UploadRemote asks Cloudinary to fetch and store a remote HTTP(S)
// image URL, returning the secure URL.
func (c *Client) UploadRemote(ctx context.Context, remoteURL string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("upload client not configured")
	}
	lower := strings.ToLower(remoteURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", errors.New("remote URL must be http or https")
	}

	params := c.signedParams()
	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("file", remoteURL)

	return c.post(ctx, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// signedParams builds the upload parameters with the request signature
// Cloudinary expects: sha1 over the sorted non-auth params + secret.
func (c *Client) signedParams() map[string]string {
	params := map[string]string{
		"folder":    c.folder,
		"public_id": uuid.New().String(),
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))

	params["api_key"] = c.apiKey
	params["signature"] = hex.EncodeToString(sum[:])
	return params
}

func (c *Client) post(ctx context.Context, body io.Reader, contentType string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("upload failed (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("upload failed: status %d", resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}
	return result.SecureURL, nil
}
