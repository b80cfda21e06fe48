package fiche

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"shelter-catalog/internal/domain/catalog"
)

const (
	MIMEType = "application/pdf"

	defaultStory = "Fiche en cours de rédaction."
	seniorLabel  = "SOS Senior : adoption à don libre"

	photoWidth = 60.0 // mm
	photoX     = 140.0
)

var ErrEmptyName = errors.New("record has no name")

type Options struct {
	ShelterName string
	Phone       string
	Email       string
	Footer      string

	// Uncompressed deja los streams de contenido en texto plano (tests, depuración).
	Uncompressed bool
}

// Renderer dibuja la ficha de adopción de una página.
type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render genera el PDF. photo puede ser nil; una foto ilegible se omite.
func (r *Renderer) Render(rec catalog.AnimalRecord, photo *catalog.Photo) ([]byte, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return nil, ErrEmptyName
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	if r.opts.Uncompressed {
		pdf.SetCompression(false)
	}
	pdf.SetTitle("Fiche d'adoption - "+rec.Name, true)
	if r.opts.ShelterName != "" {
		pdf.SetAuthor(r.opts.ShelterName, true)
	}
	pdf.SetAutoPageBreak(true, 25)

	footer := r.opts.Footer
	if footer == "" {
		footer = r.opts.ShelterName
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 10, latin(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// En-tête
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(220, 0, 0)
	pdf.CellFormat(0, 15, latin("FICHE D'ADOPTION : "+rec.Name), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	top := pdf.GetY()
	textW := 0.0
	photoBottom := top
	if jpg, w, h, ok := normalizePhoto(photo); ok {
		pdf.RegisterImageOptionsReader("photo", fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(jpg))
		pdf.ImageOptions("photo", photoX, top, photoWidth, 0, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
		textW = photoX - pdf.GetX() - 5
		photoBottom = top + photoWidth*float64(h)/float64(w)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	line := func(s string) {
		pdf.CellFormat(textW, 10, latin(s), "", 1, "L", false, 0, "")
	}
	line("Espèce : " + orDefault(rec.Species, "Non précisé"))
	line("Sexe : " + orDefault(rec.Sex, "Non précisé"))
	if rec.Breed != "" {
		line("Race : " + rec.Breed)
	}
	line("Âge : " + rec.AgeText())

	if rec.FreeAdoption() {
		pdf.Ln(2)
		pdf.SetFillColor(74, 21, 75)
		pdf.SetTextColor(255, 204, 255)
		pdf.CellFormat(textW, 10, latin(seniorLabel), "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	// Aptitudes
	pdf.Ln(5)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(textW, 10, "  APTITUDES :", "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(textW, 8, "   - Entente Chats : "+catalog.OuiNon(rec.Compat.WithCats), "", 1, "L", false, 0, "")
	pdf.CellFormat(textW, 8, "   - Entente Chiens : "+catalog.OuiNon(rec.Compat.WithDogs), "", 1, "L", false, 0, "")
	pdf.CellFormat(textW, 8, "   - Entente Enfants : "+catalog.OuiNon(rec.Compat.WithChildren), "", 1, "L", false, 0, "")

	if pdf.GetY() < photoBottom {
		pdf.SetY(photoBottom)
	}

	// Histoire
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, " SON HISTOIRE :", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, latin(orDefault(rec.StoryText(), defaultStory)), "", "L", false)

	// Si hay historia y descripción, la descripción va aparte.
	if strings.TrimSpace(rec.Story) != "" && strings.TrimSpace(rec.Description) != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 10, " DESCRIPTION :", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, latin(rec.Description), "", "L", false)
	}

	if contact := r.contactLine(); contact != "" {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, latin(contact), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render fiche %q: %w", rec.Name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) contactLine() string {
	parts := make([]string, 0, 2)
	if r.opts.Phone != "" {
		parts = append(parts, "Tél. "+r.opts.Phone)
	}
	if r.opts.Email != "" {
		parts = append(parts, r.opts.Email)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Contact : " + strings.Join(parts, " - ")
}

// normalizePhoto re-codifica la foto a JPEG baseline: fpdf no soporta PNG
// entrelazados ni todas las variantes de JPEG. Devuelve ok=false si no se puede leer.
func normalizePhoto(p *catalog.Photo) ([]byte, int, int, bool) {
	if p == nil || len(p.Data) == 0 {
		return nil, 0, 0, false
	}
	img, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return nil, 0, 0, false
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, 0, 0, false
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, 0, 0, false
	}
	return out.Bytes(), b.Dx(), b.Dy(), true
}

// latin pasa el texto a Windows-1252 (lo que esperan las fuentes core de fpdf);
// lo que no entra se reemplaza por "?".
func latin(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '’', '‘':
			r = '\''
		case '“', '”':
			r = '"'
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
