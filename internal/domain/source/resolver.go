package source

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrMissingURL   = errors.New("share url is missing")
	ErrMalformedURL = errors.New("share url is malformed")
)

const (
	// CSVExportSuffix reemplaza el modo edición de la hoja.
	CSVExportSuffix = "/export?format=csv"

	// ConfigSheet es el nombre del tab secundario con afiches y otros valores.
	ConfigSheet = "Config"

	driveThumbnail = "https://drive.google.com/thumbnail?id=%s&sz=w1000"
)

// Marcadores de modo editor / export que se cortan del link compartido.
var editMarkers = []string{"/edit", "/export", "/gviz", "/htmlview", "/pubhtml"}

var (
	// Orden fijo: /d/<id> tiene prioridad sobre id=<id>.
	drivePathID  = regexp.MustCompile(`/d/([A-Za-z0-9_-]+)`)
	driveQueryID = regexp.MustCompile(`[?&]id=([A-Za-z0-9_-]+)`)
)

// CatalogEndpoint convierte el link "compartir" de la hoja en el endpoint CSV del
// primer tab. No hace I/O.
func CatalogEndpoint(shareURL string) (string, error) {
	base, err := baseURL(shareURL)
	if err != nil {
		return "", err
	}
	return base + CSVExportSuffix, nil
}

// ConfigEndpoint apunta al tab "Config" de la misma hoja, exportado como CSV.
// Que el tab no exista no es un error de esta función: lo resuelve quien lo descarga.
func ConfigEndpoint(shareURL string) (string, error) {
	return SheetEndpoint(shareURL, ConfigSheet)
}

// SheetEndpoint exporta un tab por nombre.
func SheetEndpoint(shareURL, sheet string) (string, error) {
	base, err := baseURL(shareURL)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", sheet)
	return base + "/gviz/tq?" + q.Encode(), nil
}

// baseURL corta en el primer marcador de modo editor y descarta query/fragment.
func baseURL(shareURL string) (string, error) {
	s := strings.TrimSpace(shareURL)
	if s == "" {
		return "", ErrMissingURL
	}
	if !isAbsoluteHTTP(s) {
		return "", ErrMalformedURL
	}

	cut := len(s)
	for _, m := range editMarkers {
		if i := strings.Index(s, m); i >= 0 && i < cut {
			cut = i
		}
	}
	s = s[:cut]

	// Sin marcador: igual hay que limpiar ?usp=… o #gid=…
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")

	if !isAbsoluteHTTP(s) {
		return "", ErrMalformedURL
	}
	return s, nil
}

// DriveFileID extrae el id de un link de Drive. Prefiere /d/<id> sobre id=<id>.
func DriveFileID(rawRef string) (string, bool) {
	if m := drivePathID.FindStringSubmatch(rawRef); m != nil {
		return m[1], true
	}
	if m := driveQueryID.FindStringSubmatch(rawRef); m != nil {
		return m[1], true
	}
	return "", false
}

// ImageURL normaliza la celda Photo en una URL mostrable.
// ok=false significa "usar placeholder".
func ImageURL(rawRef string) (string, bool) {
	s := strings.TrimSpace(rawRef)
	if IsPlaceholder(s) {
		return "", false
	}

	if isDriveRef(s) {
		if id, ok := DriveFileID(s); ok {
			return fmt.Sprintf(driveThumbnail, id), true
		}
	}

	if isAbsoluteHTTP(s) {
		return s, true
	}
	return "", false
}

// IsPlaceholder reconoce celdas vacías o con basura típica de la hoja ("0", "nan").
func IsPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "0" || strings.EqualFold(s, "nan")
}

func isDriveRef(s string) bool {
	return strings.Contains(s, "drive.google.com") || strings.Contains(s, "docs.google.com")
}

func isAbsoluteHTTP(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsAbsoluteURL es la validación usada para valores del tab Config.
func IsAbsoluteURL(s string) bool {
	return isAbsoluteHTTP(strings.TrimSpace(s))
}
