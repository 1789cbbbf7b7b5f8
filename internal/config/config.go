package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MenusDir   string
	RecipesDir string
	DataDir    string
	AppDataDir string
	OutputDir  string
	DBPath     string

	CorrectionsPath string

	// SourcesFromMergedCatalog selects the domain aggregation input: the raw
	// URL-grouped catalog (false, the default) or the title-merged one.
	SourcesFromMergedCatalog bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		MenusDir:   getEnv("MENUS_DIR", filepath.Join(cwd, "Menus")),
		RecipesDir: getEnv("RECIPES_DIR", filepath.Join(cwd, "Recipes")),
		DataDir:    getEnv("DATA_DIR", filepath.Join(cwd, "data")),
		AppDataDir: getEnv("APP_DATA_DIR", filepath.Join(cwd, "app", "public", "data")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "menumaker.db")),

		CorrectionsPath: getEnv("CORRECTIONS_PATH", filepath.Join(cwd, "data", "link_corrections.json")),

		SourcesFromMergedCatalog: getEnvBool("SOURCES_FROM_MERGED_CATALOG", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
