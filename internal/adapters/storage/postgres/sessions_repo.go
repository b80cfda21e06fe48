package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shelter-catalog/internal/domain/sessions"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) Create(ctx context.Context, s sessions.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visitor_sessions (
			id, announcement_shown_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4)
	`,
		s.ID,
		toNullTime(s.AnnouncementShownAt),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sessions.Session{}, sessions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, announcement_shown_at, created_at, updated_at
		FROM visitor_sessions
		WHERE id = $1
	`, id)

	var s sessions.Session
	var shown sql.NullTime
	if err := row.Scan(&s.ID, &shown, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sessions.Session{}, sessions.ErrNotFound
		}
		return sessions.Session{}, err
	}
	if shown.Valid {
		t := shown.Time
		s.AnnouncementShownAt = &t
	}
	return s, nil
}

// MarkAnnouncementShown es un compare-and-set: solo la primera llamada actualiza.
func (r *SessionsRepo) MarkAnnouncementShown(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visitor_sessions
		SET announcement_shown_at = $2, updated_at = $2
		WHERE id = $1 AND announcement_shown_at IS NULL
	`, id, at)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 1 {
		return true, nil
	}

	// 0 filas: o ya estaba marcada o no existe
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *SessionsRepo) DeleteCreatedBefore(ctx context.Context, before time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM visitor_sessions
		WHERE created_at < $1
	`, before)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
