package catalog

import "slices"

// Filter es conjuntivo; campos vacíos = "todos".
type Filter struct {
	Species string     // match exacto, sensible a mayúsculas
	Bracket AgeBracket // "" = todos
}

// FilterAvailable deja afuera los adoptados. Devuelve un slice nuevo.
func FilterAvailable(records []AnimalRecord) []AnimalRecord {
	out := make([]AnimalRecord, 0, len(records))
	for _, r := range records {
		if r.IsAdopted() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterBy aplica especie y tramo de edad preservando el orden relativo.
func FilterBy(records []AnimalRecord, f Filter) []AnimalRecord {
	out := make([]AnimalRecord, 0, len(records))
	for _, r := range records {
		if f.Species != "" && r.Species != f.Species {
			continue
		}
		if f.Bracket != "" && r.AgeBracket != f.Bracket {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Species lista las especies presentes, en orden de primera aparición (tabs de la UI).
func Species(records []AnimalRecord) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range records {
		if r.Species == "" {
			continue
		}
		if _, ok := seen[r.Species]; ok {
			continue
		}
		seen[r.Species] = struct{}{}
		out = append(out, r.Species)
	}
	return out
}

// FindByRow busca por posición en la hoja.
func FindByRow(records []AnimalRecord, row int) (AnimalRecord, bool) {
	for _, r := range records {
		if r.Row == row {
			return r, true
		}
	}
	return AnimalRecord{}, false
}

// NewestFirst invierte el orden de la hoja: la última fila se considera la más
// reciente. No modifica values.
func NewestFirst(values []string) []string {
	out := slices.Clone(values)
	slices.Reverse(out)
	return out
}
