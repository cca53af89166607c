// Package storage cliente del Storage de Supabase vía su API REST.
// El backend solo firma URLs de lectura; la subida de PDFs la hace el
// sistema que recibe las facturas.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/facturas-pro/internal/application/facturas"
	"github.com/tu-usuario/facturas-pro/pkg/config"
)

var _ facturas.StorageSigner = (*SupabaseClient)(nil)

// SupabaseClient firma URLs contra POST /storage/v1/object/sign/{bucket}/{path}.
type SupabaseClient struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseClient construye el cliente con la configuración de storage.
func NewSupabaseClient(cfg config.StorageConfig) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// SignedURL pide una URL temporal de lectura para el objeto path del bucket.
func (c *SupabaseClient) SignedURL(ctx context.Context, path string, expirySecs int) (string, error) {
	body, err := json.Marshal(signRequest{ExpiresIn: expirySecs})
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s",
		c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("crear sign request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("firmar URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("firmar URL: storage respondió %d: %s", resp.StatusCode, string(b))
	}

	var sr signResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decodificar sign response: %w", err)
	}
	if sr.SignedURL == "" {
		return "", fmt.Errorf("firmar URL: respuesta sin signedURL")
	}

	// La API devuelve una ruta relativa a /storage/v1
	return c.baseURL + "/storage/v1" + sr.SignedURL, nil
}
