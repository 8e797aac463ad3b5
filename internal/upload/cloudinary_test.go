package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Minimal valid PNG header, enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func testClient(baseURL string) *Client {
	c := New("demo", "key", "secret", "avatars")
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

func TestClient_Enabled(t *testing.T) {
	assert.True(t, New("demo", "key", "secret", "f").Enabled())
	assert.False(t, New("", "", "", "f").Enabled())
}

func TestClient_UploadBuffer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(MaxAvatarSize))
		assert.Equal(t, "avatars", r.FormValue("folder"))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.NotEmpty(t, r.FormValue("signature"))
		assert.NotEmpty(t, r.FormValue("public_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url": "https://res.cloudinary.com/demo/avatars/x.png"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	secureURL, err := client.UploadBuffer(context.Background(), pngBytes)

	assert.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/avatars/x.png", secureURL)
}

func TestClient_UploadBuffer_Rejections(t *testing.T) {
	client := testClient("")

	t.Run("non-image bytes", func(t *testing.T) {
		_, err := client.UploadBuffer(context.Background(), []byte("just some text"))
		assert.Equal(t, ErrUnsupportedType, err)
	})

	t.Run("oversized payload", func(t *testing.T) {
		_, err := client.UploadBuffer(context.Background(), make([]byte, MaxAvatarSize+1))
		assert.Equal(t, ErrTooLarge, err)
	})

	t.Run("disabled client", func(t *testing.T) {
		disabled := New("", "", "", "")
		_, err := disabled.UploadBuffer(context.Background(), pngBytes)
		assert.Error(t, err)
	})
}

func TestClient_UploadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "https://img.example.com/a.png", r.FormValue("file"))
		assert.NotEmpty(t, r.FormValue("signature"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url": "https://res.cloudinary.com/demo/avatars/a.png"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	secureURL, err := client.UploadRemote(context.Background(), "https://img.example.com/a.png")
	assert.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/avatars/a.png", secureURL)

	_, err = client.UploadRemote(context.Background(), "ftp://img.example.com/a.png")
	assert.Error(t, err)
}

func TestClient_UploadBuffer_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid signature"}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.UploadBuffer(context.Background(), pngBytes)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid signature")
}
