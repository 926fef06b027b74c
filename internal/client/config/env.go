package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "LMS_API_URL"
	EnvRequestTimeout = "LMS_TIMEOUT"
	EnvSessionDB      = "LMS_SESSION_DB"
	EnvDownloadDir    = "LMS_DOWNLOAD_DIR"
	EnvStorage        = "LMS_STORAGE"
	EnvBlobDir        = "LMS_BLOB_DIR"
	EnvS3Bucket       = "LMS_S3_BUCKET"
	EnvS3Region       = "LMS_S3_REGION"
	EnvS3Endpoint     = "LMS_S3_ENDPOINT"
	EnvS3AccessKey    = "LMS_S3_ACCESS_KEY"
	EnvS3SecretKey    = "LMS_S3_SECRET_KEY"
	EnvBulkDelay      = "LMS_BULK_DELAY"
	EnvLogLevel       = "LMS_LOG_LEVEL"
	EnvLogBackend     = "LMS_LOG_BACKEND"
)

var dotEnvFile = ".env"

// loadDotEnv copies variables from ./.env into the process environment.
// Variables already set win; a missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// parseEnv overlays cfg with non-empty LMS_* variables.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAPIURL, &cfg.APIURL)
	str(EnvSessionDB, &cfg.SessionDB)
	str(EnvDownloadDir, &cfg.DownloadDir)
	str(EnvStorage, &cfg.Storage)
	str(EnvBlobDir, &cfg.BlobDir)
	str(EnvS3Bucket, &cfg.S3Bucket)
	str(EnvS3Region, &cfg.S3Region)
	str(EnvS3Endpoint, &cfg.S3Endpoint)
	str(EnvS3AccessKey, &cfg.S3AccessKey)
	str(EnvS3SecretKey, &cfg.S3SecretKey)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvLogBackend, &cfg.LogBackend)

	return errors.Join(
		dur(EnvRequestTimeout, &cfg.RequestTimeout),
		dur(EnvBulkDelay, &cfg.BulkDelay),
	)
}
