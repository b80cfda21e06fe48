package sessions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)

	// MarkAnnouncementShown marca la sesión solo si no estaba marcada.
	// Devuelve true si esta llamada hizo la marca.
	MarkAnnouncementShown(ctx context.Context, id string, at time.Time) (bool, error)

	// DeleteCreatedBefore borra las sesiones creadas antes de before y devuelve cuántas.
	DeleteCreatedBefore(ctx context.Context, before time.Time) (int, error)
}
