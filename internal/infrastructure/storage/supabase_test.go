package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturas-pro/pkg/config"
)

func clienteDePrueba(t *testing.T, handler http.HandlerFunc) *SupabaseClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSupabaseClient(config.StorageConfig{
		BaseURL:    srv.URL,
		ServiceKey: "service-key-de-prueba",
		Bucket:     "facturas-pdf",
	})
}

func TestSignedURL_FirmaYResuelveLaURL(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]int
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"signedURL": "/object/sign/facturas-pdf/2025/fv-100.pdf?token=abc",
		})
	})

	url, err := c.SignedURL(context.Background(), "2025/fv-100.pdf", 3600)

	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/sign/facturas-pdf/2025/fv-100.pdf", gotPath)
	assert.Equal(t, "Bearer service-key-de-prueba", gotAuth)
	assert.Equal(t, 3600, gotBody["expiresIn"])
	assert.Contains(t, url, "/storage/v1/object/sign/facturas-pdf/2025/fv-100.pdf?token=abc")
}

func TestSignedURL_ErrorDelStorage(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Object not found"}`, http.StatusNotFound)
	})

	_, err := c.SignedURL(context.Background(), "no-existe.pdf", 60)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSignedURL_RespuestaSinURL(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.SignedURL(context.Background(), "x.pdf", 60)
	assert.Error(t, err)
}
