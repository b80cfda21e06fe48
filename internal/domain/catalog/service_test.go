package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-catalog/internal/ports/sheets"
)

// -------------------------
// Test fetcher (in-memory)
// -------------------------

type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  map[string]int
	gate   chan struct{} // si no es nil, Fetch espera a que se cierre
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		bodies: map[string]string{},
		errs:   map[string]error{},
		calls:  map[string]int{},
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, sheets.ErrNotFound
	}
	return []byte(body), nil
}

func (f *fakeFetcher) set(url, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[url] = body
}

func (f *fakeFetcher) callsFor(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

const (
	shareURL  = "https://docs.google.com/spreadsheets/d/sheet-1/edit?usp=sharing"
	csvURL    = "https://docs.google.com/spreadsheets/d/sheet-1/export?format=csv"
	configURL = "https://docs.google.com/spreadsheets/d/sheet-1/gviz/tq?sheet=Config&tqx=out%3Acsv"
)

func newTestService(f *fakeFetcher, now *time.Time) *Service {
	svc := NewService(f, Options{TTL: time.Minute})
	svc.now = func() time.Time { return *now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Load_CachedWithinWindowAndIdempotent(t *testing.T) {
	f := newFakeFetcher()
	f.set(csvURL, scenarioCSV)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc := newTestService(f, &now)

	first, err := svc.LoadShared(context.Background(), shareURL)
	require.NoError(t, err)

	// mutar la copia devuelta no debe tocar la caché
	first[0].Name = "Mutated"
	first[0].Compat.WithCats = true

	now = now.Add(30 * time.Second)
	second, err := svc.LoadShared(context.Background(), shareURL)
	require.NoError(t, err)
	third, err := svc.LoadShared(context.Background(), shareURL)
	require.NoError(t, err)

	assert.Equal(t, 1, f.callsFor(csvURL))
	assert.Equal(t, "Rex", second[0].Name)
	if diff := cmp.Diff(second, third); diff != "" {
		t.Fatalf("records differ between cached loads (-second +third):\n%s", diff)
	}
}

func TestService_Load_ReloadsAfterWindowAndRefresh(t *testing.T) {
	f := newFakeFetcher()
	f.set(csvURL, scenarioCSV)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc := newTestService(f, &now)

	_, err := svc.Load(context.Background(), csvURL)
	require.NoError(t, err)

	now = now.Add(61 * time.Second)
	_, err = svc.Load(context.Background(), csvURL)
	require.NoError(t, err)
	assert.Equal(t, 2, f.callsFor(csvURL))

	// refresh manual: recarga aunque estemos dentro de la ventana
	f.set(csvURL, "Nom,Âge\nNouveau,3\n")
	svc.Refresh()
	recs, err := svc.Load(context.Background(), csvURL)
	require.NoError(t, err)
	assert.Equal(t, 3, f.callsFor(csvURL))
	require.Len(t, recs, 1)
	assert.Equal(t, "Nouveau", recs[0].Name)
}

func TestService_Load_ErrorKinds(t *testing.T) {
	f := newFakeFetcher()
	f.errs[csvURL] = errors.New("connection refused")
	now := time.Now()
	svc := newTestService(f, &now)

	_, err := svc.LoadShared(context.Background(), "")
	assert.Equal(t, KindSourceConfig, KindOf(err))

	_, err = svc.LoadShared(context.Background(), "docs.google.com/whatever")
	assert.Equal(t, KindSourceConfig, KindOf(err))

	_, err = svc.LoadShared(context.Background(), shareURL)
	assert.Equal(t, KindFetch, KindOf(err))

	// errores no se cachean
	delete(f.errs, csvURL)
	f.set(csvURL, "Especie\nChien\n")
	_, err = svc.LoadShared(context.Background(), shareURL)
	assert.Equal(t, KindParse, KindOf(err))
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.NotEmpty(t, UserMessage(KindOf(err)))
}

func TestService_Load_ConcurrentMissesShareOneFetch(t *testing.T) {
	f := newFakeFetcher()
	f.set(csvURL, scenarioCSV)
	f.gate = make(chan struct{})
	now := time.Now()
	svc := newTestService(f, &now)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := svc.Load(context.Background(), csvURL)
			if err == nil && len(recs) != 2 {
				err = fmt.Errorf("expected 2 records, got %d", len(recs))
			}
			errs <- err
		}()
	}
	// dar tiempo a que todos entren al singleflight
	time.Sleep(50 * time.Millisecond)
	close(f.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, f.callsFor(csvURL), 2)
}

func TestService_Find(t *testing.T) {
	f := newFakeFetcher()
	f.set(csvURL, scenarioCSV)
	now := time.Now()
	svc := newTestService(f, &now)

	rec, err := svc.Find(context.Background(), shareURL, 2)
	require.NoError(t, err)
	assert.Equal(t, "Mia", rec.Name)

	_, err = svc.Find(context.Background(), shareURL, 3) // fila sin nombre: descartada
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestService_Announcements(t *testing.T) {
	f := newFakeFetcher()
	f.set(configURL, "Clé,Valeur\nLien_Affiche,https://example.org/old.jpg\nLien_Affiche,https://example.org/new.jpg\n")
	now := time.Now()
	svc := newTestService(f, &now)

	newest, err := svc.Announcements(context.Background(), shareURL, "Lien_Affiche", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/new.jpg", "https://example.org/old.jpg"}, newest)

	inOrder, err := svc.Announcements(context.Background(), shareURL, "Lien_Affiche", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/old.jpg", "https://example.org/new.jpg"}, inOrder)
	assert.Equal(t, 1, f.callsFor(configURL))
}

func TestService_ConfigEntries_MissingTabIsEmpty(t *testing.T) {
	f := newFakeFetcher()
	now := time.Now()
	svc := newTestService(f, &now)

	got, err := svc.ConfigEntries(context.Background(), configURL, "Lien_Affiche")
	require.NoError(t, err)
	assert.Empty(t, got)

	f.errs[configURL] = errors.New("timeout")
	svc.Refresh()
	_, err = svc.ConfigEntries(context.Background(), configURL, "Lien_Affiche")
	assert.Equal(t, KindFetch, KindOf(err))
}
