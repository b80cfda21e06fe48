package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{"10,5", 10.5, true},
		{"10.5", 10.5, true},
		{" 0,3 ", 0.3, true},
		{"?", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1,000.5", 0, false},
		{"1e3", 0, false},
		{"1E1", 0, false},
		{"0x1p3", 0, false},
		{"0x10", 0, false},
		{"1_0", 0, false},
		{"+3", 3, true},
	}
	for _, c := range cases {
		got, ok := ParseDecimal(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.InDelta(t, c.want, got, 1e-9, "input %q", c.in)
	}
}

func TestBracketFor(t *testing.T) {
	cases := []struct {
		age  string
		want AgeBracket
	}{
		{"0,5", BracketJunior},
		{"0.99", BracketJunior},
		{"1", BracketYoungAdult},
		{"5", BracketYoungAdult},
		{"5,1", BracketAdult},
		{"9.99", BracketAdult},
		{"10", BracketSenior},
		{"10,5", BracketSenior},
		{"10.5", BracketSenior},
		{"17", BracketSenior},
		{"?", BracketUnspecified},
		{"", BracketUnspecified},
		{"abc", BracketUnspecified},
		{"1e3", BracketUnspecified},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BracketFor(ParseAge(c.age)), "age %q", c.age)
	}
}

func TestStatusFrom(t *testing.T) {
	cases := map[string]StatusKind{
		"Adopté":               StatusAdopted,
		"Adopté le 12/03":      StatusAdopted,
		"Urgence":              StatusUrgent,
		"URGENCE":              StatusOther, // sensible a mayúsculas
		"Réservé":              StatusReserved,
		"Disponible":           StatusAvailable,
		"":                     StatusAvailable,
		"En famille d'accueil": StatusOther,
		// é descompuesto (NFD) también cuenta
		"Adopte\u0301": StatusAdopted,
	}
	for in, want := range cases {
		got := StatusFrom(in)
		assert.Equal(t, want, got.Kind, "input %q", in)
	}
	assert.Equal(t, "En famille d'accueil", StatusFrom("  En famille d'accueil ").Label)
}

func TestCompatFlag(t *testing.T) {
	assert.True(t, CompatFlag("TRUE"))
	assert.True(t, CompatFlag(" TRUE "))
	for _, in := range []string{"True", "true", "1", "false", "FALSE", "OUI", ""} {
		assert.False(t, CompatFlag(in), "input %q", in)
	}
}

func TestAnimalRecord_Helpers(t *testing.T) {
	rec := AnimalRecord{
		Name:        "Rex",
		AgeRaw:      "12",
		Age:         ParseAge("12"),
		AgeBracket:  BracketSenior,
		Description: "Calme",
		PhotoRef:    "https://drive.google.com/file/d/abc/view",
	}
	assert.True(t, rec.FreeAdoption())
	assert.Equal(t, "Fiche_Rex.pdf", rec.FicheFilename())
	assert.Equal(t, "12 ans", rec.AgeText())
	assert.Equal(t, "Calme", rec.StoryText())

	img, ok := rec.ImageURL()
	assert.True(t, ok)
	assert.Contains(t, img, "id=abc")

	rec.AgeRaw, rec.Age = "?", ParseAge("?")
	assert.Equal(t, "?", rec.AgeText())
	assert.Equal(t, "OUI", OuiNon(true))
	assert.Equal(t, "NON", OuiNon(false))
}
