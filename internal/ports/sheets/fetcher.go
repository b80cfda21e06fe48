package sheets

import (
	"context"
	"errors"
)

// ErrNotFound: el tab/archivo no existe (p.ej. hoja sin tab "Config").
var ErrNotFound = errors.New("sheet not found")

// Fetcher descarga el contenido crudo (CSV) de un endpoint de hoja.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
