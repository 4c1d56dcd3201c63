package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DataDir     string // JSON koleksiyon dosyalarının bulunduğu klasör
	DocsDir     string // Yüklenen dökümanların kaydedileceği klasör
	CORSOrigins string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DataDir:     getEnv("DATA_DIR", "./md.data"),
		DocsDir:     getEnv("DOCS_DIR", "./md.docs"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.DataDir == "./md.data" {
		logrus.Warn("DATA_DIR varsayılan değer kullanılıyor: ./md.data")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		logrus.Warn("CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
