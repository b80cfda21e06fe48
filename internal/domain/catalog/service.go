package catalog

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"shelter-catalog/internal/domain/source"
	"shelter-catalog/internal/platform/logger"
	"shelter-catalog/internal/ports/sheets"
)

type Options struct {
	// TTL es la ventana de frescura del catálogo (default 60s).
	TTL    time.Duration
	Logger logger.Logger
}

type Service struct {
	fetcher sheets.Fetcher
	log     logger.Logger
	tracer  trace.Tracer
	now     func() time.Time

	records *cache[[]AnimalRecord]
	config  *cache[[]string]
}

func NewService(fetcher sheets.Fetcher, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	s := &Service{
		fetcher: fetcher,
		log:     log.With(map[string]any{"component": "catalog"}),
		tracer:  otel.Tracer("shelter-catalog/catalog"),
		now:     time.Now,
	}
	// vía closure para que los tests puedan cambiar s.now
	clock := func() time.Time { return s.now() }
	s.records = newCache[[]AnimalRecord](opts.TTL, clock)
	s.config = newCache[[]string](opts.TTL, clock)
	return s
}

// Load trae el catálogo del endpoint CSV (con caché). Cada llamada devuelve una
// copia: mutarla no altera lo cacheado.
func (s *Service) Load(ctx context.Context, endpoint string) ([]AnimalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Load")
	defer span.End()

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		err := newError(KindSourceConfig, "load", source.ErrMissingURL)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("catalog.endpoint", endpoint))

	recs, hit, err := s.records.get(ctx, endpoint, func(ctx context.Context) ([]AnimalRecord, error) {
		return s.fetchRecords(ctx, endpoint)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("catalog.cache_hit", hit),
		attribute.Int("catalog.records", len(recs)),
	)
	return slices.Clone(recs), nil
}

// LoadShared resuelve el link compartido y carga el catálogo.
func (s *Service) LoadShared(ctx context.Context, shareURL string) ([]AnimalRecord, error) {
	endpoint, err := source.CatalogEndpoint(shareURL)
	if err != nil {
		return nil, newError(KindSourceConfig, "resolve", err)
	}
	return s.Load(ctx, endpoint)
}

// Find devuelve el registro de la fila row (posición en la hoja).
func (s *Service) Find(ctx context.Context, shareURL string, row int) (AnimalRecord, error) {
	recs, err := s.LoadShared(ctx, shareURL)
	if err != nil {
		return AnimalRecord{}, err
	}
	rec, ok := FindByRow(recs, row)
	if !ok {
		return AnimalRecord{}, ErrRecordNotFound
	}
	return rec, nil
}

// Refresh invalida la caché: la próxima carga ignora la ventana de frescura.
func (s *Service) Refresh() {
	s.records.invalidate()
	s.config.invalidate()
	s.log.Info("catalog cache invalidated", nil)
}

// ConfigEntries lee valores del tab Config cuya clave contiene keyPrefix.
// Si el tab no existe devuelve una lista vacía sin error.
func (s *Service) ConfigEntries(ctx context.Context, endpoint, keyPrefix string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.ConfigEntries")
	defer span.End()

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, newError(KindSourceConfig, "config", source.ErrMissingURL)
	}

	key := endpoint + "|" + strings.ToLower(strings.TrimSpace(keyPrefix))
	values, _, err := s.config.get(ctx, key, func(ctx context.Context) ([]string, error) {
		raw, err := s.fetcher.Fetch(ctx, endpoint)
		if errors.Is(err, sheets.ErrNotFound) {
			s.log.Debug("config sheet not found", map[string]any{"endpoint": endpoint})
			return []string{}, nil
		}
		if err != nil {
			return nil, newError(KindFetch, "config", err)
		}
		vals, err := ParseConfigValues(bytes.NewReader(raw), keyPrefix)
		if err != nil {
			return nil, newError(KindParse, "config", err)
		}
		return vals, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "config load failed")
		return nil, err
	}
	return slices.Clone(values), nil
}

// Announcements devuelve las URLs de afiches del tab Config. Con newestFirst la
// última fila de la hoja va primero.
func (s *Service) Announcements(ctx context.Context, shareURL, keyPrefix string, newestFirst bool) ([]string, error) {
	endpoint, err := source.ConfigEndpoint(shareURL)
	if err != nil {
		return nil, newError(KindSourceConfig, "resolve", err)
	}
	values, err := s.ConfigEntries(ctx, endpoint, keyPrefix)
	if err != nil {
		return nil, err
	}
	if newestFirst {
		return NewestFirst(values), nil
	}
	return values, nil
}

func (s *Service) fetchRecords(ctx context.Context, endpoint string) ([]AnimalRecord, error) {
	start := s.now()
	raw, err := s.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		s.log.Warn("catalog fetch failed", map[string]any{"endpoint": endpoint, "err": err})
		return nil, newError(KindFetch, "fetch", err)
	}

	recs, err := ParseRecords(bytes.NewReader(raw))
	if err != nil {
		s.log.Warn("catalog parse failed", map[string]any{"endpoint": endpoint, "err": err})
		return nil, newError(KindParse, "parse", err)
	}

	s.log.Info("catalog loaded", map[string]any{
		"records":     len(recs),
		"bytes":       len(raw),
		"duration_ms": s.now().Sub(start).Milliseconds(),
	})
	return recs, nil
}
