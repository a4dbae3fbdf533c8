package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Geometry describes the display canvas and the two text bands on it.
type Geometry struct {
	Width             int
	Height            int
	Slots             int
	BandFraction      float64
	HorizontalPadding int
	MaxFontFraction   float64
}

func defaultGeometry() Geometry {
	return Geometry{
		Width:             960,
		Height:            680,
		Slots:             3,
		BandFraction:      0.43,
		HorizontalPadding: 50,
		MaxFontFraction:   0.9,
	}
}

func (g Geometry) LineHeight() float64 {
	return float64(g.Height) * g.BandFraction
}

func (g Geometry) MaxFontSize() float64 {
	return g.LineHeight() * g.MaxFontFraction
}

func (g Geometry) MaxLineWidth() int {
	return g.Width - 2*g.HorizontalPadding
}

// BandCenters returns the vertical centers of the top and bottom bands.
func (g Geometry) BandCenters() (float64, float64) {
	lh := g.LineHeight()
	return lh / 2, float64(g.Height) - lh + lh/2
}

// BufferSize is the length of a packed framebuffer for this canvas.
func (g Geometry) BufferSize() int {
	return (g.Width + 7) / 8 * g.Height
}

type Config struct {
	Addr              string        `yaml:"addr"`
	ImagesDir         string        `yaml:"images_dir"`
	FontPath          string        `yaml:"font_path"`
	DBPath            string        `yaml:"db_path"`
	BasicAuthUsername string        `yaml:"basic_auth_username"`
	BasicAuthPassword string        `yaml:"basic_auth_password"`
	Timeout           time.Duration `yaml:"timeout"`

	Geometry Geometry `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		Addr:      ":8000",
		ImagesDir: "images",
		DBPath:    "./hymnboard.db",
		Timeout:   120 * time.Second,
		Geometry:  defaultGeometry(),
	}
}

func (c Config) authEnabled() bool {
	return c.BasicAuthUsername != "" && c.BasicAuthPassword != ""
}

// loadConfig layers defaults, the optional YAML file, the environment and
// explicitly set flags, in that order.
func loadConfig(args []string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	flagSet := pflag.NewFlagSet("hymnboard", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to a YAML config file")
	addr := flagSet.String("addr", cfg.Addr, "listen address")
	imagesDir := flagSet.String("images-dir", cfg.ImagesDir, "directory holding slot PNGs and lines.json")
	fontPath := flagSet.String("font", "", "TrueType/OpenType font file (default: embedded Go Regular)")
	dbPath := flagSet.String("db", cfg.DBPath, "sqlite database for device check-ins (empty disables)")
	timeout := flagSet.Duration("timeout", cfg.Timeout, "HTTP read/write timeout")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if flagSet.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", *configPath, err)
		}
	}

	if port := getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if v := getenv("BASIC_AUTH_USERNAME"); v != "" {
		cfg.BasicAuthUsername = v
	}
	if v := getenv("BASIC_AUTH_PASSWORD"); v != "" {
		cfg.BasicAuthPassword = v
	}
	if v := getenv("IMAGES_DIR"); v != "" {
		cfg.ImagesDir = v
	}
	if v := getenv("FONT_PATH"); v != "" {
		cfg.FontPath = v
	}
	if v, ok := lookup(getenv, "HYMNBOARD_DB"); ok {
		cfg.DBPath = v
	}
	if v := getenv("WEB_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid WEB_TIMEOUT %q", v)
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if flagSet.Changed("addr") {
		cfg.Addr = *addr
	}
	if flagSet.Changed("images-dir") {
		cfg.ImagesDir = *imagesDir
	}
	if flagSet.Changed("font") {
		cfg.FontPath = *fontPath
	}
	if flagSet.Changed("db") {
		cfg.DBPath = *dbPath
	}
	if flagSet.Changed("timeout") {
		cfg.Timeout = *timeout
	}

	// The canvas size is fixed by the display hardware.
	cfg.Geometry = defaultGeometry()

	return cfg, nil
}

// lookup treats "-" as an explicit empty value so the DB can be disabled from
// the environment.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "-" {
		return "", true
	}
	return v, true
}
