package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"shelter-catalog/internal/domain/sessions"
	"shelter-catalog/internal/domain/source"
	"shelter-catalog/internal/middleware"
	"shelter-catalog/internal/platform/logger"
)

// FicheRenderer genera la ficha PDF de un animal. photo puede ser nil.
type FicheRenderer interface {
	Render(rec AnimalRecord, photo *Photo) ([]byte, error)
}

// PhotoFetcher baja los bytes de la foto para embeberla en la ficha.
type PhotoFetcher interface {
	FetchImage(ctx context.Context, url string) (Photo, error)
}

type RouteOptions struct {
	ShareURL         string
	AnnouncementKey  string
	NewestFirst      bool
	PlaceholderImage string
	Phone            string
	Email            string

	Fiches  FicheRenderer
	Photos  PhotoFetcher // puede ser nil: fichas sin foto
	Logger  logger.Logger
	Session *sessions.Service
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	opts.Logger = opts.Logger.With(map[string]any{"component": "catalog_http"})

	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc, opts))
		ar.Get("/species", listSpeciesHandler(svc, opts))
		ar.Get("/{row}/fiche", downloadFicheHandler(svc, opts))
	})

	r.Post("/catalog/refresh", refreshCatalogHandler(svc))

	// Solo los afiches leen la sesión: el resto del catálogo no crea sesiones.
	if opts.Session != nil {
		r.With(middleware.SessionContext(opts.Session, opts.Logger)).
			Get("/announcements", announcementsHandler(svc, opts))
	} else {
		r.Get("/announcements", announcementsHandler(svc, opts))
	}
}

type compatResponse struct {
	Cats     string `json:"cats"`
	Dogs     string `json:"dogs"`
	Children string `json:"children"`
}

type actionsResponse struct {
	Call  string `json:"call,omitempty"`
	Email string `json:"email,omitempty"`
	Fiche string `json:"fiche"`
}

type animalCard struct {
	Row               int             `json:"row"`
	Name              string          `json:"name"`
	Species           string          `json:"species"`
	Sex               string          `json:"sex"`
	Breed             string          `json:"breed,omitempty"`
	Age               string          `json:"age"`
	AgeYears          *float64        `json:"age_years,omitempty"`
	AgeBracket        AgeBracket      `json:"age_bracket"`
	AgeBracketLabel   string          `json:"age_bracket_label"`
	Status            StatusKind      `json:"status"`
	StatusLabel       string          `json:"status_label"`
	Image             string          `json:"image"`
	HasImage          bool            `json:"has_image"`
	Compat            compatResponse  `json:"compat"`
	Story             string          `json:"story"`
	Description       string          `json:"description,omitempty"`
	FreeAdoption      bool            `json:"free_adoption"`
	FreeAdoptionLabel string          `json:"free_adoption_label,omitempty"`
	Actions           actionsResponse `json:"actions"`
}

type animalsResponse struct {
	Animals []animalCard `json:"animals"`
	Count   int          `json:"count"`
	Message string       `json:"message,omitempty"`
}

type speciesResponse struct {
	Species []string `json:"species"`
	Message string   `json:"message,omitempty"`
}

type announcementsResponse struct {
	Images []string `json:"images"`
	Show   bool     `json:"show"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Devuelve las fichas del catálogo. Por defecto excluye los adoptados. Si la hoja no responde o no se puede leer, devuelve 200 con lista vacía y un mensaje; si el link de la hoja no está configurado, 503.
// @Tags animals
// @Produce json
// @Param species query string false "Especie exacta (ej. Chien, Chat)"
// @Param age query string false "Tramo de edad: junior, young_adult, adult, senior, unspecified"
// @Param include_adopted query bool false "Incluir adoptados"
// @Success 200 {object} animalsResponse
// @Failure 400 {string} string "invalid filter"
// @Failure 503 {object} animalsResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, includeAdopted, err := parseListQuery(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		recs, err := svc.LoadShared(r.Context(), opts.ShareURL)
		if err != nil {
			status, msg := loadFailure(err, opts.Logger)
			writeJSON(w, status, animalsResponse{Animals: []animalCard{}, Message: msg})
			return
		}

		if !includeAdopted {
			recs = FilterAvailable(recs)
		}
		recs = FilterBy(recs, f)

		cards := make([]animalCard, 0, len(recs))
		for _, rec := range recs {
			if c, ok := safeCard(rec, opts); ok {
				cards = append(cards, c)
			}
		}
		writeJSON(w, http.StatusOK, animalsResponse{Animals: cards, Count: len(cards)})
	}
}

// listSpeciesHandler godoc
// @Summary Listar especies
// @Description Especies presentes entre los animales disponibles, en orden de aparición en la hoja.
// @Tags animals
// @Produce json
// @Success 200 {object} speciesResponse
// @Failure 503 {object} speciesResponse
// @Router /animals/species [get]
func listSpeciesHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.LoadShared(r.Context(), opts.ShareURL)
		if err != nil {
			status, msg := loadFailure(err, opts.Logger)
			writeJSON(w, status, speciesResponse{Species: []string{}, Message: msg})
			return
		}
		writeJSON(w, http.StatusOK, speciesResponse{Species: Species(FilterAvailable(recs))})
	}
}

// downloadFicheHandler godoc
// @Summary Descargar ficha de adopción
// @Description Genera el PDF de una página para el animal de la fila indicada (1 = primera fila de datos).
// @Tags animals
// @Produce application/pdf
// @Param row path int true "Fila del animal en la hoja"
// @Success 200 {file} file
// @Failure 400 {string} string "invalid row"
// @Failure 404 {string} string "animal not found"
// @Failure 502 {string} string "catalog unavailable"
// @Failure 503 {string} string "catalog not configured"
// @Router /animals/{row}/fiche [get]
func downloadFicheHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := strconv.Atoi(chi.URLParam(r, "row"))
		if err != nil || row < 1 {
			http.Error(w, "invalid row", http.StatusBadRequest)
			return
		}

		rec, err := svc.Find(r.Context(), opts.ShareURL, row)
		switch {
		case errors.Is(err, ErrRecordNotFound):
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		case KindOf(err) == KindSourceConfig:
			http.Error(w, "catalog not configured", http.StatusServiceUnavailable)
			return
		case err != nil:
			http.Error(w, "catalog unavailable", http.StatusBadGateway)
			return
		}

		if opts.Fiches == nil {
			http.Error(w, "fiche export disabled", http.StatusNotImplemented)
			return
		}

		pdf, err := opts.Fiches.Render(rec, photoFor(r.Context(), rec, opts))
		if err != nil {
			opts.Logger.Error("fiche render failed", map[string]any{"row": row, "err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": rec.FicheFilename(),
		}))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}

// refreshCatalogHandler godoc
// @Summary Refrescar catálogo
// @Description Invalida la caché: la próxima lectura vuelve a bajar la hoja.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]string
// @Router /catalog/refresh [post]
func refreshCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		svc.Refresh()
		writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
	}
}

// announcementsHandler godoc
// @Summary Afiches promocionales
// @Description Imágenes del tab Config (la más reciente primero). show es true solo la primera vez en la sesión del visitante (cookie refuge_session).
// @Tags announcements
// @Produce json
// @Success 200 {object} announcementsResponse
// @Router /announcements [get]
func announcementsHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := announcementsResponse{Images: []string{}}

		values, err := svc.Announcements(r.Context(), opts.ShareURL, opts.AnnouncementKey, opts.NewestFirst)
		if err != nil {
			// los afiches no bloquean la página
			opts.Logger.Warn("announcements unavailable", map[string]any{"kind": KindOf(err).String(), "err": err})
			writeJSON(w, http.StatusOK, out)
			return
		}
		for _, v := range values {
			if img, ok := source.ImageURL(v); ok {
				out.Images = append(out.Images, img)
			}
		}

		if len(out.Images) > 0 && opts.Session != nil {
			if id, ok := middleware.GetSessionID(r.Context()); ok {
				show, err := opts.Session.ClaimAnnouncement(r.Context(), id)
				if err != nil {
					opts.Logger.Warn("announcement claim failed", map[string]any{"err": err})
				}
				out.Show = show
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListQuery(q url.Values) (Filter, bool, error) {
	f := Filter{Species: strings.TrimSpace(q.Get("species"))}

	if v := strings.TrimSpace(q.Get("age")); v != "" {
		b, ok := ParseAgeBracket(v)
		if !ok {
			return Filter{}, false, errors.New("age must be one of junior, young_adult, adult, senior, unspecified")
		}
		f.Bracket = b
	}

	includeAdopted := false
	if v := strings.TrimSpace(q.Get("include_adopted")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, false, errors.New("include_adopted must be a boolean")
		}
		includeAdopted = b
	}
	return f, includeAdopted, nil
}

// loadFailure: configuración faltante bloquea (503); fallas de red o de lectura
// degradan a lista vacía con mensaje.
func loadFailure(err error, log logger.Logger) (int, string) {
	kind := KindOf(err)
	log.Warn("catalog unavailable", map[string]any{"kind": kind.String(), "err": err})
	if kind == KindSourceConfig {
		return http.StatusServiceUnavailable, UserMessage(kind)
	}
	return http.StatusOK, UserMessage(kind)
}

// safeCard arma la tarjeta de un registro; un panic descarta solo ese registro.
func safeCard(rec AnimalRecord, opts RouteOptions) (c animalCard, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			opts.Logger.Error("card build failed", map[string]any{"row": rec.Row, "name": rec.Name, "panic": p})
			ok = false
		}
	}()
	return buildCard(rec, opts), true
}

func buildCard(rec AnimalRecord, opts RouteOptions) animalCard {
	c := animalCard{
		Row:             rec.Row,
		Name:            rec.Name,
		Species:         rec.Species,
		Sex:             rec.Sex,
		Breed:           rec.Breed,
		Age:             rec.AgeText(),
		AgeBracket:      rec.AgeBracket,
		AgeBracketLabel: rec.AgeBracket.Label(),
		Status:          rec.Status.Kind,
		StatusLabel:     rec.Status.Label,
		Compat: compatResponse{
			Cats:     OuiNon(rec.Compat.WithCats),
			Dogs:     OuiNon(rec.Compat.WithDogs),
			Children: OuiNon(rec.Compat.WithChildren),
		},
		Story:       rec.StoryText(),
		Description: rec.Description,
		Actions: actionsResponse{
			Fiche: "/animals/" + strconv.Itoa(rec.Row) + "/fiche",
		},
	}
	if rec.Age.Valid {
		years := rec.Age.Years
		c.AgeYears = &years
	}

	if img, ok := rec.ImageURL(); ok {
		c.Image, c.HasImage = img, true
	} else {
		c.Image = opts.PlaceholderImage
	}

	if rec.FreeAdoption() {
		c.FreeAdoption = true
		c.FreeAdoptionLabel = "Senior : adoption à don libre"
	}

	if phone := strings.ReplaceAll(opts.Phone, " ", ""); phone != "" {
		c.Actions.Call = "tel:" + phone
	}
	if email := strings.TrimSpace(opts.Email); email != "" {
		c.Actions.Email = "mailto:" + email + "?subject=" + url.PathEscape("Adoption - "+rec.Name)
	}
	return c
}

func photoFor(ctx context.Context, rec AnimalRecord, opts RouteOptions) *Photo {
	if opts.Photos == nil {
		return nil
	}
	img, ok := rec.ImageURL()
	if !ok {
		return nil
	}
	p, err := opts.Photos.FetchImage(ctx, img)
	if err != nil {
		opts.Logger.Info("fiche without photo", map[string]any{"row": rec.Row, "err": err})
		return nil
	}
	return &p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
