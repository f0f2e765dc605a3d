package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres | sqlite
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigins    string
	ModelDir       string // eğitilmiş model dosyalarının klasörü
	TrainingCSV    string // kapanışta biriken eğitim satırları
	// Hedef kaydırmayı restoran bazında yap (varsayılan: tüm tablo boyunca kaydır)
	PartitionByOwner bool
	Location         *time.Location
	// Boşsa /predict/reload kapalıdır
	ModelReloadToken string
}

const defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=foodshare port=5432 sslmode=disable"

// Load ortam değişkenlerinden ayarları okur. Varsa .env dosyası önce yüklenir,
// zaten tanımlı değişkenler ezilmez.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] .env dosyası okunamadı: %v", err)
	}

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDriver:   strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseDSN:      getEnv("DATABASE_DSN", defaultPostgresDSN),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ModelDir:         getEnv("MODEL_DIR", "models"),
		TrainingCSV:      getEnv("TRAINING_CSV_PATH", "ml_data.csv"),
		PartitionByOwner: getBool("TRAIN_PARTITION_BY_OWNER", false),
		Location:         time.Local,
		ModelReloadToken: getEnv("MODEL_RELOAD_TOKEN", ""),
	}

	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("[WARN] APP_TIMEZONE geçersiz (%s), sistem saat dilimi kullanılıyor", tz)
		} else {
			cfg.Location = loc
		}
	}

	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		log.Fatalf("[FATAL] DATABASE_DRIVER sadece 'postgres' veya 'sqlite' olabilir, gelen: %s", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultPostgresDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}

	return cfg
}

// RequireServerSecrets sadece HTTP sunucusu için zorunlu olan ayarları kontrol eder.
// Eğitim komutu JWT kullanmadığı için bu kontrol Load içinde değil.
func (cfg *Config) RequireServerSecrets() {
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.ModelReloadToken == "" {
		log.Println("[WARN] MODEL_RELOAD_TOKEN tanımlı değil, /predict/reload kapalı; yeni modeller için sunucuyu yeniden başlat.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
