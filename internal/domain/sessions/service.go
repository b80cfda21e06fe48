package sessions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
)

const (
	// DefaultTTL es la vida de una sesión de visitante.
	DefaultTTL = 24 * time.Hour

	// pruneEvery acota cada cuánto Start barre sesiones vencidas.
	pruneEvery = 10 * time.Minute
)

type Service struct {
	repo Repository
	now  func() time.Time
	ttl  time.Duration

	mu        sync.Mutex
	lastPrune time.Time
}

// NewService crea el servicio; ttl <= 0 usa DefaultTTL.
func NewService(repo Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo: repo,
		now:  time.Now,
		ttl:  ttl,
	}
}

func (s *Service) Start(ctx context.Context) (Session, error) {
	s.maybePrune(ctx)

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrInvalidInput
	}
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if s.expired(sess) {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Resume devuelve la sesión id o crea una nueva si no existe o venció (cookie vieja,
// id inventado, reinicio del proceso con repo en memoria).
func (s *Service) Resume(ctx context.Context, id string) (Session, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err == nil {
		sess, err := s.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Session{}, err
		}
	}
	return s.Start(ctx)
}

// ClaimAnnouncement devuelve true exactamente una vez por sesión: quien recibe true
// muestra el anuncio. Las siguientes llamadas devuelven false.
func (s *Service) ClaimAnnouncement(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrInvalidInput
	}
	return s.repo.MarkAnnouncementShown(ctx, id, s.now())
}

// Prune borra las sesiones más viejas que el ttl.
func (s *Service) Prune(ctx context.Context) (int, error) {
	return s.repo.DeleteCreatedBefore(ctx, s.now().Add(-s.ttl))
}

// maybePrune corre Prune como mucho una vez cada pruneEvery. Un error de barrido no
// impide crear la sesión: se reintenta en la próxima ventana.
func (s *Service) maybePrune(ctx context.Context) {
	now := s.now()
	s.mu.Lock()
	if !s.lastPrune.IsZero() && now.Sub(s.lastPrune) < pruneEvery {
		s.mu.Unlock()
		return
	}
	s.lastPrune = now
	s.mu.Unlock()

	_, _ = s.Prune(ctx)
}

func (s *Service) expired(sess Session) bool {
	return !sess.CreatedAt.IsZero() && s.now().Sub(sess.CreatedAt) >= s.ttl
}
