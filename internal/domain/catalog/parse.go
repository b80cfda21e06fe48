package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"shelter-catalog/internal/domain/source"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptySheet    = errors.New("sheet has no header row")
)

// ParseRecords lee el CSV exportado de la hoja. Solo "Nom" es obligatoria como
// columna; las demás ausentes quedan en cero. Filas sin nombre se descartan.
// El orden de salida es el de la hoja.
func ParseRecords(r io.Reader) ([]AnimalRecord, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, err
	}

	idx := indexHeader(header)
	if _, ok := idx[ColName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColName)
	}

	out := make([]AnimalRecord, 0)
	n := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		n++

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(fields) {
				return ""
			}
			return fields[i]
		}

		rec, ok := newRecord(n, get)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseConfigValues devuelve la 2da columna de cada fila cuya 1ra columna contiene
// keyPrefix (sin distinguir mayúsculas), descartando valores vacíos o que no son URL
// absolutas. Respeta el orden de la hoja.
func ParseConfigValues(r io.Reader, keyPrefix string) ([]string, error) {
	cr := newCSVReader(r)
	needle := strings.ToLower(strings.TrimSpace(keyPrefix))

	out := make([]string, 0)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			continue
		}
		if !strings.Contains(strings.ToLower(fields[0]), needle) {
			continue
		}
		v := strings.TrimSpace(fields[1])
		if v == "" || !source.IsAbsoluteURL(v) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // filas irregulares son normales en hojas editadas a mano
	return cr
}

// indexHeader mapea nombre de columna -> posición. Ante duplicados gana la primera.
func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = norm.NFC.String(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, dup := idx[h]; dup {
			continue
		}
		idx[h] = i
	}
	return idx
}
