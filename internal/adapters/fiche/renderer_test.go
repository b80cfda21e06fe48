package fiche

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-catalog/internal/domain/catalog"
)

func testRenderer() *Renderer {
	return NewRenderer(Options{
		ShelterName: "Refuge Médéric",
		Phone:       "0558736882",
		Footer:      "Refuge Médéric - Association Animaux du Grand Dax",
	})
}

func seniorRecord() catalog.AnimalRecord {
	age := catalog.ParseAge("12")
	return catalog.AnimalRecord{
		Row:        1,
		Name:       "Rex",
		Species:    "Chien",
		Sex:        "Mâle",
		AgeRaw:     "12",
		Age:        age,
		AgeBracket: catalog.BracketFor(age),
		Status:     catalog.StatusFrom("Disponible"),
		Story:      "Trouvé en 2019 “près du canal”, très câlin. 🐶",
		Compat:     catalog.Compat{WithDogs: true},
	}
}

func pngPhoto(t *testing.T) *catalog.Photo {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 120, B: uint8(y * 8), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &catalog.Photo{Data: buf.Bytes(), ContentType: "image/png"}
}

func TestRender_WithoutPhoto(t *testing.T) {
	out, err := testRenderer().Render(seniorRecord(), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_WithPhoto(t *testing.T) {
	r := testRenderer()
	without, err := r.Render(seniorRecord(), nil)
	require.NoError(t, err)

	with, err := r.Render(seniorRecord(), pngPhoto(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(with, []byte("%PDF")))
	assert.Greater(t, len(with), len(without))
}

func TestRender_UnreadablePhotoIsSkipped(t *testing.T) {
	junk := &catalog.Photo{Data: []byte("not an image"), ContentType: "image/jpeg"}
	out, err := testRenderer().Render(seniorRecord(), junk)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_EmptyStoryAndName(t *testing.T) {
	rec := seniorRecord()
	rec.Story = ""
	out, err := testRenderer().Render(rec, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	rec.Name = "  "
	_, err = testRenderer().Render(rec, nil)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestLatin(t *testing.T) {
	assert.Equal(t, "\xc9p\xe9e 'ok' ?", latin("Épée ’ok’ 🐶"))
	assert.Equal(t, "d\xe9j\xe0", latin("déjà"))
}

func TestRender_Content(t *testing.T) {
	r := NewRenderer(Options{ShelterName: "Refuge Médéric", Phone: "0558736882", Uncompressed: true})

	senior, err := r.Render(seniorRecord(), nil)
	require.NoError(t, err)
	assert.Contains(t, string(senior), "FICHE D'ADOPTION : Rex")
	assert.Contains(t, string(senior), "don libre")
	assert.Contains(t, string(senior), "Entente Chiens : OUI")
	assert.Contains(t, string(senior), "Entente Chats : NON")
	assert.Contains(t, string(senior), "Entente Enfants : NON")

	young := seniorRecord()
	young.Name = "Mia"
	young.AgeRaw = "2"
	young.Age = catalog.ParseAge("2")
	young.AgeBracket = catalog.BracketFor(young.Age)
	young.Story = ""
	young.Compat = catalog.Compat{WithCats: true}

	out, err := r.Render(young, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "FICHE D'ADOPTION : Mia")
	assert.NotContains(t, string(out), "don libre")
	assert.Contains(t, string(out), "Entente Chats : OUI")
	assert.Contains(t, string(out), "Fiche en cours de r")
}
