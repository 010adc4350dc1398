package imagestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldops/internal/adapters/out/imagestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPImageStore_Store(t *testing.T) {
	t.Run("uploads_image_and_returns_url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, _, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"url":"https://media.example.com/photos/abc.jpg"}`))
		}))
		defer server.Close()

		store, err := imagestore.NewHTTPImageStore(server.URL)
		require.NoError(t, err)

		url, err := store.Store(context.Background(), []byte{0xFF, 0xD8, 0xFF})

		require.NoError(t, err)
		assert.Equal(t, "https://media.example.com/photos/abc.jpg", url)
	})

	t.Run("returns_error_on_server_failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		store, err := imagestore.NewHTTPImageStore(server.URL)
		require.NoError(t, err)

		_, err = store.Store(context.Background(), []byte{0xFF})

		assert.Error(t, err)
	})

	t.Run("rejects_empty_payload", func(t *testing.T) {
		store, err := imagestore.NewHTTPImageStore("http://localhost:1")
		require.NoError(t, err)

		_, err = store.Store(context.Background(), nil)

		assert.Error(t, err)
	})
}

func TestNewHTTPImageStore_RequiresEndpoint(t *testing.T) {
	_, err := imagestore.NewHTTPImageStore("")
	assert.Error(t, err)
}
