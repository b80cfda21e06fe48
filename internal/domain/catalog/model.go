package catalog

import (
	"strconv"
	"strings"

	"shelter-catalog/internal/domain/source"
)

// Columnas de la hoja. Se comparan exactas (con acentos).
const (
	ColName        = "Nom"
	ColSpecies     = "Espèce"
	ColSex         = "Sexe"
	ColAge         = "Âge"
	ColStatus      = "Statut"
	ColPhoto       = "Photo"
	ColStory       = "Histoire"
	ColDescription = "Description"
	ColCats        = "OK_Chat"
	ColDogs        = "OK_Chien"
	ColChildren    = "OK_Enfant"
	ColBreed       = "Race"
)

// AgeBracket clasifica la edad en tramos.
// @Enum junior, young_adult, adult, senior, unspecified
type AgeBracket string

const (
	BracketJunior      AgeBracket = "junior"      // < 1
	BracketYoungAdult  AgeBracket = "young_adult" // [1, 5]
	BracketAdult       AgeBracket = "adult"       // (5, 10)
	BracketSenior      AgeBracket = "senior"      // >= 10
	BracketUnspecified AgeBracket = "unspecified"
)

var bracketLabels = map[AgeBracket]string{
	BracketJunior:      "Junior (moins d'un an)",
	BracketYoungAdult:  "Jeune adulte (1 à 5 ans)",
	BracketAdult:       "Adulte (5 à 10 ans)",
	BracketSenior:      "Senior (10 ans et plus)",
	BracketUnspecified: "Âge non précisé",
}

func (b AgeBracket) Label() string {
	if l, ok := bracketLabels[b]; ok {
		return l
	}
	return bracketLabels[BracketUnspecified]
}

// ParseAgeBracket valida un valor de filtro ("" no es válido acá: significa "todos"
// y lo decide el caller).
func ParseAgeBracket(s string) (AgeBracket, bool) {
	b := AgeBracket(strings.ToLower(strings.TrimSpace(s)))
	_, ok := bracketLabels[b]
	return b, ok
}

// StatusKind es el estado normalizado a partir de la columna libre "Statut".
type StatusKind string

const (
	StatusAvailable StatusKind = "available"
	StatusReserved  StatusKind = "reserved"
	StatusUrgent    StatusKind = "urgent"
	StatusAdopted   StatusKind = "adopted"
	StatusOther     StatusKind = "other"
)

type Status struct {
	Kind  StatusKind
	Label string // texto crudo de la hoja
}

// Age es la edad en años; Valid=false cuando la celda no se pudo leer.
type Age struct {
	Years float64
	Valid bool
}

func (a Age) String() string {
	if !a.Valid {
		return "?"
	}
	return strconv.FormatFloat(a.Years, 'f', -1, 64)
}

type Compat struct {
	WithCats     bool
	WithDogs     bool
	WithChildren bool
}

// AnimalRecord es una fila del catálogo. Los campos derivados (AgeBracket, Status,
// Compat) se recalculan en cada carga desde la hoja, nunca se editan a mano.
type AnimalRecord struct {
	// Row es la posición 1-based de la fila de datos en la hoja (identidad estable
	// dentro de una carga; los nombres pueden repetirse).
	Row int

	Name    string
	Species string
	Sex     string
	Breed   string

	AgeRaw     string
	Age        Age
	AgeBracket AgeBracket

	Status Status

	PhotoRef string

	Story       string
	Description string

	Compat Compat
}

func (r AnimalRecord) IsSenior() bool { return r.AgeBracket == BracketSenior }

// FreeAdoption: los seniors se adoptan a "don libre".
func (r AnimalRecord) FreeAdoption() bool { return r.IsSenior() }

func (r AnimalRecord) IsAdopted() bool { return r.Status.Kind == StatusAdopted }

// ImageURL resuelve la celda Photo; ok=false => placeholder.
func (r AnimalRecord) ImageURL() (string, bool) {
	return source.ImageURL(r.PhotoRef)
}

// FicheFilename es el nombre del PDF descargable.
func (r AnimalRecord) FicheFilename() string {
	return "Fiche_" + r.Name + ".pdf"
}

// AgeText es la edad tal como se muestra ("12 ans", "?").
func (r AnimalRecord) AgeText() string {
	if raw := strings.TrimSpace(r.AgeRaw); raw != "" && r.Age.Valid {
		return raw + " ans"
	}
	return "?"
}

// StoryText prioriza Histoire, luego Description.
func (r AnimalRecord) StoryText() string {
	if s := strings.TrimSpace(r.Story); s != "" {
		return s
	}
	return strings.TrimSpace(r.Description)
}

// Photo son los bytes de una imagen ya descargada (para el PDF).
type Photo struct {
	Data        []byte
	ContentType string
}

// OuiNon traduce un flag de compatibilidad.
func OuiNon(v bool) string {
	if v {
		return "OUI"
	}
	return "NON"
}
