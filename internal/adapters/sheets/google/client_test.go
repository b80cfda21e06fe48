package google

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-catalog/internal/ports/sheets"
)

func TestClient_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte("Nom\nRex\n"))
	})
	mux.HandleFunc("/missing-tab", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Invalid sheet", http.StatusBadRequest)
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>Sign in</html>"))
	})
	mux.HandleFunc("/boom", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := NewClient(Config{Timeout: time.Second})

	body, err := c.Fetch(context.Background(), ts.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "Nom\nRex\n", string(body))

	_, err = c.Fetch(context.Background(), ts.URL+"/missing-tab")
	assert.True(t, errors.Is(err, sheets.ErrNotFound))

	_, err = c.Fetch(context.Background(), ts.URL+"/private")
	assert.True(t, errors.Is(err, ErrSheetNotPublic))

	_, err = c.Fetch(context.Background(), ts.URL+"/boom")
	assert.True(t, errors.Is(err, ErrSheetsUpstream))
}

func TestClient_FetchImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	mux := http.NewServeMux()
	mux.HandleFunc("/photo", func(w http.ResponseWriter, _ *http.Request) {
		// Drive a veces responde con un content-type genérico
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/not-image", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := NewClient(Config{Timeout: time.Second})

	p, err := c.FetchImage(context.Background(), ts.URL+"/photo")
	require.NoError(t, err)
	assert.Equal(t, "image/png", p.ContentType)
	assert.Equal(t, buf.Bytes(), p.Data)

	_, err = c.FetchImage(context.Background(), ts.URL+"/not-image")
	assert.True(t, errors.Is(err, ErrNotAnImage))
}
