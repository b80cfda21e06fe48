package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultTimeout acota cada request saliente: un recurso caído no puede colgar la página.
	DefaultTimeout = 12 * time.Second

	// MaxBodyBytes limita lo que aceptamos de una hoja o imagen.
	MaxBodyBytes = 8 << 20
)

var (
	ErrBodyTooLarge = errors.New("httpclient: response body too large")
)

// Client envuelve *resty.Client con helpers comunes para adapters.
type Client struct {
	R *resty.Client

	maxBody int64
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "shelter-catalog/1.0")
	return &Client{R: r, maxBody: MaxBodyBytes}
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	c := New(timeout)
	if tr != nil {
		c.R.SetTransport(tr)
	}
	return c
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// StatusOf devuelve el status de un *HTTPError envuelto en err (0 si no hay).
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Response es lo mínimo que los adapters necesitan de una respuesta.
type Response struct {
	Body        []byte
	ContentType string
}

// Get hace un GET absoluto y devuelve el body.
// Retorna *HTTPError si status no es 2xx.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (Response, error) {
	if c == nil || c.R == nil {
		return Response{}, errors.New("httpclient: nil client")
	}

	fullURL, err := absoluteURL(rawURL)
	if err != nil {
		return Response{}, err
	}

	req := c.R.R().SetContext(ctx)
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.SetHeader(k, v)
	}

	// el body se lee a mano y acotado; resty no lo bufferea
	resp, err := req.SetDoNotParseResponse(true).Get(fullURL)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: do request: %w", err)
	}
	raw := resp.RawBody()
	if raw == nil {
		return Response{}, errors.New("httpclient: empty response")
	}
	defer raw.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		snippet, _ := readAtMost(raw, 512)
		return Response{}, &HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := readAtMost(raw, c.maxBody+1)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: read body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return Response{}, ErrBodyTooLarge
	}

	return Response{
		Body:        body,
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = MaxBodyBytes
	}
	return io.ReadAll(io.LimitReader(r, max))
}

func absoluteURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("httpclient: empty url")
	}
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("httpclient: url must be http(s)")
	}
	return rawURL, nil
}
