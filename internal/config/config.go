// Package config loads dyematch settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the tunables shared by every command. Flags override these values.
type Config struct {
	PalettePath    string
	ZoomMin        float64
	ZoomMax        float64
	ZoomStep       float64
	SampleSize     int
	SimilarRadius  float64
	SimilarLimit   int
	ExtractColours int
	MaxDimension   int
	ClusterPlugin  string
	CacheDir       string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ZoomMin:        10,
		ZoomMax:        400,
		ZoomStep:       10,
		SampleSize:     1,
		SimilarRadius:  50,
		SimilarLimit:   5,
		ExtractColours: 5,
		MaxDimension:   512,
	}
}

// Load reads configuration from the environment. Variables from the given .env
// files, or ./.env when none are given, fill in anything not already set.
// A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	def := Default()
	var errs []error
	cfg := Config{
		PalettePath:    getEnv("DYEMATCH_PALETTE", def.PalettePath),
		ZoomMin:        getEnvFloat("DYEMATCH_ZOOM_MIN", def.ZoomMin, &errs),
		ZoomMax:        getEnvFloat("DYEMATCH_ZOOM_MAX", def.ZoomMax, &errs),
		ZoomStep:       getEnvFloat("DYEMATCH_ZOOM_STEP", def.ZoomStep, &errs),
		SampleSize:     getEnvInt("DYEMATCH_SAMPLE_SIZE", def.SampleSize, &errs),
		SimilarRadius:  getEnvFloat("DYEMATCH_SIMILAR_RADIUS", def.SimilarRadius, &errs),
		SimilarLimit:   getEnvInt("DYEMATCH_SIMILAR_LIMIT", def.SimilarLimit, &errs),
		ExtractColours: getEnvInt("DYEMATCH_EXTRACT_COLOURS", def.ExtractColours, &errs),
		MaxDimension:   getEnvInt("DYEMATCH_MAX_DIMENSION", def.MaxDimension, &errs),
		ClusterPlugin:  getEnv("DYEMATCH_CLUSTER_PLUGIN", def.ClusterPlugin),
		CacheDir:       getEnv("DYEMATCH_CACHE_DIR", def.CacheDir),
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.ZoomMin <= 0 {
		return errors.New("zoom min must be > 0")
	}
	if c.ZoomMax < c.ZoomMin {
		return fmt.Errorf("zoom max (%g) must be >= zoom min (%g)", c.ZoomMax, c.ZoomMin)
	}
	if c.ZoomStep <= 0 {
		return errors.New("zoom step must be > 0")
	}
	if c.SampleSize < 1 {
		return errors.New("sample size must be >= 1")
	}
	if c.SimilarRadius < 0 {
		return errors.New("similar radius must be >= 0")
	}
	if c.ExtractColours < 1 || c.ExtractColours > 256 {
		return fmt.Errorf("extract colours must be between 1 and 256, got %d", c.ExtractColours)
	}
	if c.MaxDimension < 0 {
		return errors.New("max dimension must be >= 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid number %q", key, v))
		return fallback
	}
	return n
}
