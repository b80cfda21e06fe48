package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

// Orden de presentación de los afiches del tab Config.
const (
	OrderNewestFirst = "newest_first"
	OrderSheet       = "sheet"
)

type Shelter struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Footer string `json:"footer"`
}

type Config struct {
	Port string `json:"port"`

	// SheetURL es el link "compartir" de la hoja pública (no el endpoint de export).
	SheetURL string `json:"sheet_url"`

	CacheTTL     Duration `json:"cache_ttl"`
	FetchTimeout Duration `json:"fetch_timeout"`

	// SessionTTL es la vida de la sesión de visitante (afiche "ya visto").
	SessionTTL Duration `json:"session_ttl"`

	AnnouncementKey   string `json:"announcement_key"`
	AnnouncementOrder string `json:"announcement_order"`

	PlaceholderImage string `json:"placeholder_image"`

	Shelter Shelter `json:"shelter"`

	DBDSN string `json:"db_dsn"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	AppName   string `json:"app_name"`
}

// Duration acepta "60s", "1m" o un número de segundos en el archivo.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"'`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return v, nil
}

func Defaults() Config {
	return Config{
		Port:              "8080",
		CacheTTL:          Duration{60 * time.Second},
		FetchTimeout:      Duration{12 * time.Second},
		SessionTTL:        Duration{24 * time.Hour},
		AnnouncementKey:   "Lien_Affiche",
		AnnouncementOrder: OrderNewestFirst,
		PlaceholderImage:  "https://placehold.co/600x400?text=Photo+bient%C3%B4t",
		Shelter: Shelter{
			Name:   "Refuge Médéric",
			Phone:  "0558736882",
			Footer: "Refuge Médéric - Association Animaux du Grand Dax",
		},
		LogLevel:  "info",
		LogFormat: "text",
		AppName:   "shelter-catalog",
	}
}

// Load arma la config en capas, de menor a mayor prioridad:
//  1. Defaults()
//  2. <path> y <path sin ext>.local.<ext> (JSON5, opcionales)
//  3. .env (opcional)
//  4. variables de entorno
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		fileCfg, err := readFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		if err == nil {
			if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
				return Config{}, fmt.Errorf("merge config: %w", err)
			}
		}
	}

	// .env es opcional (dev); en prod vienen del entorno. Si existe, tiene que ser válido.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(&cfg)

	if cfg.CacheTTL.Duration <= 0 {
		cfg.CacheTTL = Defaults().CacheTTL
	}
	if cfg.FetchTimeout.Duration <= 0 {
		cfg.FetchTimeout = Defaults().FetchTimeout
	}
	if cfg.SessionTTL.Duration <= 0 {
		cfg.SessionTTL = Defaults().SessionTTL
	}
	switch cfg.AnnouncementOrder {
	case OrderNewestFirst, OrderSheet:
	default:
		return Config{}, fmt.Errorf("invalid announcement_order %q", cfg.AnnouncementOrder)
	}
	return cfg, nil
}

// readFile lee <name> y lo mezcla con <name>.local.<ext> si existe.
// Devuelve os.ErrNotExist si no hay ninguno de los dos.
func readFile(name string) (Config, error) {
	var out Config
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	localName := localPath(name)
	local, err := os.ReadFile(localName)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override Config
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", localName, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

func applyEnv(cfg *Config) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.SheetURL, "SHEET_URL")
	setString(&cfg.AnnouncementKey, "ANNOUNCEMENT_KEY")
	setString(&cfg.AnnouncementOrder, "ANNOUNCEMENT_ORDER")
	setString(&cfg.PlaceholderImage, "PLACEHOLDER_IMAGE")
	setString(&cfg.Shelter.Name, "SHELTER_NAME")
	setString(&cfg.Shelter.Phone, "SHELTER_PHONE")
	setString(&cfg.Shelter.Email, "SHELTER_EMAIL")
	setString(&cfg.Shelter.Footer, "SHELTER_FOOTER")
	setString(&cfg.DBDSN, "DB_DSN")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.AppName, "APP_NAME")

	if v := strings.TrimSpace(os.Getenv("CACHE_TTL")); v != "" {
		if d, err := parseDuration(v); err == nil {
			cfg.CacheTTL = Duration{d}
		}
	}
	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT")); v != "" {
		if d, err := parseDuration(v); err == nil {
			cfg.FetchTimeout = Duration{d}
		}
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if d, err := parseDuration(v); err == nil {
			cfg.SessionTTL = Duration{d}
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
