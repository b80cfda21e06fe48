package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []AnimalRecord {
	mk := func(row int, name, species, age, status string) AnimalRecord {
		a := ParseAge(age)
		return AnimalRecord{
			Row: row, Name: name, Species: species,
			AgeRaw: age, Age: a, AgeBracket: BracketFor(a),
			Status: StatusFrom(status),
		}
	}
	return []AnimalRecord{
		mk(1, "Rex", "Chien", "12", "Disponible"),
		mk(2, "Mia", "Chat", "2", "Adopté"),
		mk(3, "Nala", "Chat", "0,5", "Réservé"),
		mk(4, "Oscar", "Chien", "3", "Urgence"),
		mk(5, "Bulle", "chat", "", ""),
		mk(6, "Rex", "Chat", "11", "Disponible"),
	}
}

func TestFilterAvailable_NeverReturnsAdopted(t *testing.T) {
	in := sampleRecords()
	out := FilterAvailable(in)
	assert.Len(t, out, 5)
	for _, r := range out {
		assert.NotEqual(t, StatusAdopted, r.Status.Kind)
	}
	assert.Len(t, in, 6, "input must not be modified")
}

func TestFilterBy(t *testing.T) {
	in := sampleRecords()

	cats := FilterBy(in, Filter{Species: "Chat"})
	assert.Equal(t, []int{2, 3, 6}, rows(cats)) // exacto: "chat" no entra

	seniors := FilterBy(in, Filter{Bracket: BracketSenior})
	assert.Equal(t, []int{1, 6}, rows(seniors))

	both := FilterBy(in, Filter{Species: "Chat", Bracket: BracketSenior})
	assert.Equal(t, []int{6}, rows(both))

	unspecified := FilterBy(in, Filter{Bracket: BracketUnspecified})
	assert.Equal(t, []int{5}, rows(unspecified))

	assert.Len(t, FilterBy(in, Filter{}), len(in))
	assert.Empty(t, FilterBy(in, Filter{Species: "Lapin"}))
}

func TestSpecies_FirstAppearanceOrder(t *testing.T) {
	assert.Equal(t, []string{"Chien", "Chat", "chat"}, Species(sampleRecords()))
}

func TestParseAgeBracket(t *testing.T) {
	b, ok := ParseAgeBracket(" Senior ")
	assert.True(t, ok)
	assert.Equal(t, BracketSenior, b)

	_, ok = ParseAgeBracket("ancient")
	assert.False(t, ok)
	assert.NotEmpty(t, BracketYoungAdult.Label())
}

func TestNewestFirst_DoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "c"}
	assert.Equal(t, []string{"c", "b", "a"}, NewestFirst(in))
	assert.Equal(t, []string{"a", "b", "c"}, in)
	assert.Empty(t, NewestFirst(nil))
}

func rows(recs []AnimalRecord) []int {
	out := make([]int, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Row)
	}
	return out
}
