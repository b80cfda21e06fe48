package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shelter-catalog/internal/domain/catalog"
	"shelter-catalog/internal/platform/httpclient"
	"shelter-catalog/internal/ports/sheets"
)

var (
	ErrSheetsUpstream = errors.New("google sheets upstream error")
	// ErrSheetNotPublic: Google responde 200 con la página de login cuando la hoja
	// no está compartida públicamente.
	ErrSheetNotPublic = errors.New("google sheet is not public")
	ErrNotAnImage     = errors.New("response is not an image")
)

// Config del cliente. Timeout acota cada descarga (hoja o foto).
type Config struct {
	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client descarga exports CSV de Google Sheets y fotos de Drive.
// Implementa sheets.Fetcher.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		http: httpclient.NewWithTransport(cfg.Timeout, cfg.Transport),
	}
}

var _ sheets.Fetcher = (*Client)(nil)

func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.Get(ctx, url, map[string]string{"Accept": "text/csv, text/plain;q=0.9, */*;q=0.1"})
	if err != nil {
		return nil, mapError(err)
	}
	if strings.HasPrefix(strings.ToLower(resp.ContentType), "text/html") {
		return nil, ErrSheetNotPublic
	}
	return resp.Body, nil
}

// FetchImage descarga una foto (miniatura de Drive o URL directa) para el PDF.
func (c *Client) FetchImage(ctx context.Context, url string) (catalog.Photo, error) {
	resp, err := c.http.Get(ctx, url, map[string]string{"Accept": "image/*"})
	if err != nil {
		return catalog.Photo{}, mapError(err)
	}
	ct := http.DetectContentType(resp.Body)
	if !strings.HasPrefix(ct, "image/") {
		return catalog.Photo{}, fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}
	return catalog.Photo{Data: resp.Body, ContentType: ct}, nil
}

func mapError(err error) error {
	switch httpclient.StatusOf(err) {
	case 0:
		return fmt.Errorf("%w: %v", ErrSheetsUpstream, err)
	case http.StatusBadRequest, http.StatusNotFound:
		// gviz responde 400 cuando el tab pedido no existe
		return fmt.Errorf("%w: %v", sheets.ErrNotFound, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrSheetNotPublic, err)
	default:
		return fmt.Errorf("%w: %v", ErrSheetsUpstream, err)
	}
}
