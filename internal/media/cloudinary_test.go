package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unsigned-preset", r.FormValue("upload_preset"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/x.jpg"}`))
	}))
	defer srv.Close()

	u := NewCloudinaryUploader("demo", "unsigned-preset")
	u.BaseURL = srv.URL

	url, err := u.Upload(context.Background(), strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/x.jpg", url)
}

func TestCloudinaryUploadErrors(t *testing.T) {
	u := NewCloudinaryUploader("", "")
	_, err := u.Upload(context.Background(), strings.NewReader("x"))
	assert.Error(t, err, "unconfigured uploader must fail fast")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid preset"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	u = NewCloudinaryUploader("demo", "bad")
	u.BaseURL = srv.URL
	_, err = u.Upload(context.Background(), strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
