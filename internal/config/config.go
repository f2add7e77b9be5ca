package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// PageSizes configura o tamanho de página por tipo de listagem.
type PageSizes struct {
	Main     int
	Category int
	Profile  int
}

// As sessões vivem como linhas no sqlite (tokens opacos do scs), então não
// existe segredo de assinatura de cookie para configurar aqui.
type Config struct {
	Port        string
	DatabaseURL string
	StorageDir  string
	Env         string // "dev" or "prod"
	PageSizes   PageSizes
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "./blogum.db"),
		StorageDir:  getEnv("STORAGE_DIR", "storage"),
		Env:         getEnv("APP_ENV", "dev"),
		PageSizes: PageSizes{
			Main:     getEnvInt("PAGE_SIZE_MAIN", 10),
			Category: getEnvInt("PAGE_SIZE_CATEGORY", 10),
			Profile:  getEnvInt("PAGE_SIZE_PROFILE", 10),
		},
	}

	// Validação Estrita para Produção: o default ./blogum.db é coisa de dev,
	// prod precisa apontar o banco explicitamente.
	if cfg.Env == "prod" {
		if os.Getenv("DATABASE_URL") == "" {
			return nil, fmt.Errorf("produção: DATABASE_URL é obrigatório")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
