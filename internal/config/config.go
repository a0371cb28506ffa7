package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "picktask-backend/internal/util/env"
	"picktask-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const testingDatabaseDsn = "sqlite::memory:"

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"`

	HTTPPort string `env:"HTTP_PORT" env-default:"4005"`
	SiteURL  string `env:"SITE_URL"  env-default:"http://localhost:4005"`

	// empty REDIS_URL in tests means an embedded miniredis
	RedisURL string `env:"REDIS_URL"`

	JWTSecret string `env:"JWT_SECRET"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     env-default:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"     env-default:"noreply@picktask.local"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"     env-default:"picktask-attachments"`
	S3UseSSL    bool   `env:"S3_USE_SSL"    env-default:"false"`

	// without S3_ENDPOINT attachments are kept on local disk
	AttachmentsFolder      string `env:"ATTACHMENTS_FOLDER"        env-default:"picktask_attachments"`
	AttachmentsTempFolder  string `env:"ATTACHMENTS_TEMP_FOLDER"   env-default:"picktask_temp"`
	MaxAttachmentSizeBytes int64  `env:"MAX_ATTACHMENT_SIZE_BYTES" env-default:"10485760"`

	InvitationTTLHours int `env:"INVITATION_TTL_HOURS" env-default:"168"`

	MigrationsDir string
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.IsTesting {
		applyTestingDefaults()
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode == "" {
		log.Error("ENV_MODE is empty")
		os.Exit(1)
	}
	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if env.JWTSecret == "" {
		log.Error("JWT_SECRET is empty")
		os.Exit(1)
	}

	if !env.IsTesting && env.RedisURL == "" {
		log.Error("REDIS_URL is empty")
		os.Exit(1)
	}

	env.MigrationsDir = filepath.Join(backendRoot, "migrations")

	if !filepath.IsAbs(env.AttachmentsFolder) {
		env.AttachmentsFolder = filepath.Join(backendRoot, env.AttachmentsFolder)
	}

	if !filepath.IsAbs(env.AttachmentsTempFolder) {
		env.AttachmentsTempFolder = filepath.Join(backendRoot, env.AttachmentsTempFolder)
	}

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)
}

func applyTestingDefaults() {
	if env.DatabaseDsn == "" {
		env.DatabaseDsn = testingDatabaseDsn
	}

	if env.EnvMode == "" {
		env.EnvMode = env_utils.EnvModeDevelopment
	}

	if env.JWTSecret == "" {
		env.JWTSecret = "picktask-testing-secret"
	}
}
