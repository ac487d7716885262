package utils

import (
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
	"log"
	"os"
	"sync"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	AppPort   string `yaml:"APP_PORT"`
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Geocoding and discovery
	GoogleMapsAPIKey  string `yaml:"GOOGLE_MAPS_API_KEY"`
	GeocodeInterval   string `yaml:"GEOCODE_INTERVAL"`
	SuggestDebounceMs string `yaml:"SUGGEST_DEBOUNCE_MS"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads config.yaml once, then lets .env and the process
// environment override individual keys.
func LoadConfig() {
	configOnce.Do(func() {
		file, err := os.ReadFile("config.yaml")
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}

		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %s\n", err)
		}
		applyEnv(&config)
	})
}

func applyEnv(c *Config) {
	for key, field := range c.fields() {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"DB_DRIVER":           &c.DBDriver,
		"DB_USER":             &c.DBUser,
		"DB_NAME":             &c.DBName,
		"DB_PASSWORD":         &c.DBPassword,
		"DB_PORT":             &c.DBPort,
		"DB_HOST":             &c.DBHost,
		"DB_PATH":             &c.DBPath,
		"APP_PORT":            &c.AppPort,
		"JWT_SECRET":          &c.JWTSecret,
		"APP_URL":             &c.AppURL,
		"SMTP_HOST":           &c.SMTPHost,
		"SMTP_PORT":           &c.SMTPPort,
		"SMTP_SENDER_NAME":    &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":     &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":  &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":       &c.AWSS3Bucket,
		"AWS_S3_REGION":       &c.AWSS3Region,
		"AWS_ACCESS_KEY":      &c.AWSAccessKey,
		"AWS_SECRET_KEY":      &c.AWSSecretKey,
		"GOOGLE_MAPS_API_KEY": &c.GoogleMapsAPIKey,
		"GEOCODE_INTERVAL":    &c.GeocodeInterval,
		"SUGGEST_DEBOUNCE_MS": &c.SuggestDebounceMs,
	}
}

func GetConfig(key string) string {
	LoadConfig()
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}
