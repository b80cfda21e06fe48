package sessions

import "time"

// Session es el estado por visitante. Reemplaza el flag global "popup ya visto":
// se pasa explícito y se marca al mostrar.
type Session struct {
	ID string

	AnnouncementShownAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Session) AnnouncementShown() bool {
	return s.AnnouncementShownAt != nil
}
