package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort string `yaml:"server_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	JWTSecret  string `yaml:"jwt_secret"`

	SMTPHost    string `yaml:"smtp_host"`
	SMTPPort    string `yaml:"smtp_port"`
	SMTPUser    string `yaml:"smtp_user"`
	SMTPPass    string `yaml:"smtp_pass"`
	ContactAddr string `yaml:"contact_addr"`

	// Cron spec for the notification pruning job; empty disables it.
	PruneSchedule      string `yaml:"prune_schedule"`
	PruneRetentionDays int    `yaml:"prune_retention_days"`
}

// Load reads an optional .env file, an optional config.yaml, then lets
// environment variables override everything.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         "8080",
		DBHost:             "localhost",
		DBPort:             "5432",
		DBUser:             "jobster",
		DBPassword:         "jobster_dev_password",
		DBName:             "jobster",
		JWTSecret:          "dev-secret-change-me",
		SMTPPort:           "587",
		ContactAddr:        "contact@jobster.local",
		PruneSchedule:      "0 3 * * *",
		PruneRetentionDays: 90,
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	overrideEnv(&cfg.ServerPort, "SERVER_PORT")
	overrideEnv(&cfg.DBHost, "DB_HOST")
	overrideEnv(&cfg.DBPort, "DB_PORT")
	overrideEnv(&cfg.DBUser, "DB_USER")
	overrideEnv(&cfg.DBPassword, "DB_PASSWORD")
	overrideEnv(&cfg.DBName, "DB_NAME")
	overrideEnv(&cfg.JWTSecret, "JWT_SECRET")
	overrideEnv(&cfg.SMTPHost, "SMTP_HOST")
	overrideEnv(&cfg.SMTPPort, "SMTP_PORT")
	overrideEnv(&cfg.SMTPUser, "SMTP_USER")
	overrideEnv(&cfg.SMTPPass, "SMTP_PASS")
	overrideEnv(&cfg.ContactAddr, "CONTACT_ADDR")
	overrideEnv(&cfg.PruneSchedule, "PRUNE_SCHEDULE")

	return cfg
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func overrideEnv(dst *string, key string) {
	if val, exists := os.LookupEnv(key); exists {
		*dst = val
	}
}
