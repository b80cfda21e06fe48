package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica fallas de carga para que el caller decida degradar o bloquear.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindSourceConfig: link de la hoja ausente o mal formado. Bloqueante.
	KindSourceConfig
	// KindFetch: red, timeout o status no-2xx. Se muestra catálogo vacío.
	KindFetch
	// KindParse: CSV inválido o sin columna Nom. Se muestra catálogo vacío.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindSourceConfig:
		return "source_config"
	case KindFetch:
		return "fetch"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

var ErrRecordNotFound = errors.New("animal not found")

type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("catalog %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf devuelve el kind de un *Error envuelto, o KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage es el texto no técnico que ve el visitante.
func UserMessage(kind ErrorKind) string {
	switch kind {
	case KindSourceConfig:
		return "Le catalogue n'est pas configuré pour le moment. Merci de contacter le refuge."
	case KindFetch, KindParse:
		return "Impossible de charger les animaux pour le moment. Réessayez dans quelques instants."
	default:
		return "Une erreur est survenue."
	}
}
