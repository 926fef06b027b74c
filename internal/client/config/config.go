package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/teacherlms/internal/flagx"
	"github.com/dmitrijs2005/teacherlms/internal/logging"
)

// Storage backends for uploaded files.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds runtime settings for the LMS CLI.
//
// Fields:
//   - APIURL: base URL of the LMS REST API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDB: path of the SQLite file holding the session.
//   - DownloadDir: where downloads are saved.
//   - Storage: "local" or "s3"; where uploaded bytes are kept.
//   - BlobDir: root directory of the local blob store.
//   - S3*: bucket settings for the s3 backend.
//   - BulkDelay: pause between items of a bulk download.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	ConfigFile string

	APIURL         string
	RequestTimeout time.Duration

	SessionDB   string
	DownloadDir string

	Storage     string
	BlobDir     string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	BulkDelay time.Duration

	LogLevel   string
	LogBackend string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000/api"
	c.RequestTimeout = 30 * time.Second
	c.SessionDB = "~/.teacherlms/session.db"
	c.DownloadDir = "~/Downloads"
	c.Storage = StorageLocal
	c.BlobDir = "~/.teacherlms/blobs"
	c.S3Region = "us-east-1"
	c.BulkDelay = 300 * time.Millisecond
	c.LogLevel = "warn"
	c.LogBackend = logging.BackendSlog
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file named by -c/--config in args (if present) and from the
// environment (.env and LMS_* variables). Later sources take precedence over
// earlier ones. Command-line flags are applied afterwards by BindFlags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	cfg.ConfigFile = flagx.ConfigFile(args)
	if err := parseJSON(cfg, cfg.ConfigFile); err != nil {
		return nil, err
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the final configuration, after flags were applied.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api url %q must be an absolute http(s) URL", c.APIURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.BulkDelay < 0 {
		errs = append(errs, errors.New("bulk delay must not be negative"))
	}

	switch strings.ToLower(c.Storage) {
	case StorageLocal:
		if c.BlobDir == "" {
			errs = append(errs, errors.New("blob dir is required for local storage"))
		}
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 bucket is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage))
	}

	return errors.Join(errs...)
}
