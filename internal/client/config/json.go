package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/teacherlms/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration, so they can be strings like "30s" or integer nanoseconds.
// Absent fields leave the current value alone.
type JSONConfig struct {
	APIURL         string          `json:"api_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionDB      string          `json:"session_db"`
	DownloadDir    string          `json:"download_dir"`
	Storage        string          `json:"storage"`
	BlobDir        string          `json:"blob_dir"`
	S3Bucket       string          `json:"s3_bucket"`
	S3Region       string          `json:"s3_region"`
	S3Endpoint     string          `json:"s3_endpoint"`
	S3AccessKey    string          `json:"s3_access_key"`
	S3SecretKey    string          `json:"s3_secret_key"`
	BulkDelay      *timex.Duration `json:"bulk_delay"`
	LogLevel       string          `json:"log_level"`
	LogBackend     string          `json:"log_backend"`
}

// parseJSON overlays cfg with values from the JSON file at path. An empty
// path loads nothing.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.Storage, jc.Storage)
	setString(&cfg.BlobDir, jc.BlobDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.BulkDelay != nil {
		cfg.BulkDelay = jc.BulkDelay.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
