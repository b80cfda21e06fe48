package catalog

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseDecimal acepta "10", "10,5" o "10.5". Cualquier otra cosa => ok=false,
// incluidos exponentes ("1e3") y hex ("0x1p3") que ParseFloat sí aceptaría.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.ContainsFunc(s, notDecimalRune) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func notDecimalRune(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != '+' && r != '-'
}

func ParseAge(s string) Age {
	v, ok := ParseDecimal(s)
	return Age{Years: v, Valid: ok}
}

func BracketFor(a Age) AgeBracket {
	switch {
	case !a.Valid:
		return BracketUnspecified
	case a.Years < 1:
		return BracketJunior
	case a.Years <= 5:
		return BracketYoungAdult
	case a.Years < 10:
		return BracketAdult
	default:
		return BracketSenior
	}
}

// StatusFrom busca palabras clave (sensible a mayúsculas) en la columna Statut.
// Orden: Adopté > Urgence > Réservé.
func StatusFrom(raw string) Status {
	label := strings.TrimSpace(norm.NFC.String(raw))
	switch {
	case strings.Contains(label, "Adopté"):
		return Status{Kind: StatusAdopted, Label: label}
	case strings.Contains(label, "Urgence"):
		return Status{Kind: StatusUrgent, Label: label}
	case strings.Contains(label, "Réservé"):
		return Status{Kind: StatusReserved, Label: label}
	case label == "" || strings.Contains(label, "Disponible"):
		return Status{Kind: StatusAvailable, Label: label}
	default:
		return Status{Kind: StatusOther, Label: label}
	}
}

// CompatFlag: Sheets exporta las casillas como TRUE/FALSE; solo "TRUE" cuenta.
func CompatFlag(raw string) bool {
	return strings.TrimSpace(raw) == "TRUE"
}

// columnGetter da acceso por nombre de columna; columnas ausentes => "".
type columnGetter func(col string) string

// newRecord arma un registro desde una fila. ok=false si no tiene nombre.
func newRecord(n int, get columnGetter) (AnimalRecord, bool) {
	name := strings.TrimSpace(get(ColName))
	if name == "" || strings.EqualFold(name, "nan") {
		return AnimalRecord{}, false
	}

	ageRaw := strings.TrimSpace(get(ColAge))
	age := ParseAge(ageRaw)

	compat := Compat{
		WithCats:     CompatFlag(get(ColCats)),
		WithDogs:     CompatFlag(get(ColDogs)),
		WithChildren: CompatFlag(get(ColChildren)),
	}

	return AnimalRecord{
		Row:         n,
		Name:        name,
		Species:     strings.TrimSpace(get(ColSpecies)),
		Sex:         strings.TrimSpace(get(ColSex)),
		Breed:       strings.TrimSpace(get(ColBreed)),
		AgeRaw:      ageRaw,
		Age:         age,
		AgeBracket:  BracketFor(age),
		Status:      StatusFrom(get(ColStatus)),
		PhotoRef:    strings.TrimSpace(get(ColPhoto)),
		Story:       strings.TrimSpace(get(ColStory)),
		Description: strings.TrimSpace(get(ColDescription)),
		Compat:      compat,
	}, true
}
