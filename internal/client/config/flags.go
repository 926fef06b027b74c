package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers command-line flags on fs with the current values of c
// as defaults, so a parsed flag overrides JSON and environment values.
//
//	-c, --config string       JSON config file (read before flag parsing)
//	    --api-url string      base URL of the LMS API
//	    --timeout duration    per-request timeout
//	    --session-db string   session database file
//	-o, --download-dir string where downloads are saved
//	    --storage string      local or s3
//	    --blob-dir string     local blob store root
//	    --s3-bucket string    ...and the other --s3-* flags
//	    --bulk-delay duration pause between bulk downloads
//	    --log-level string    debug, info, warn or error
//	    --log-backend string  slog, json or zap
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ConfigFile, "config", "c", c.ConfigFile, "JSON config file")

	fs.StringVar(&c.APIURL, "api-url", c.APIURL, "base URL of the LMS API")
	fs.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "per-request timeout")

	fs.StringVar(&c.SessionDB, "session-db", c.SessionDB, "session database file")
	fs.StringVarP(&c.DownloadDir, "download-dir", "o", c.DownloadDir, "directory downloads are saved to")

	fs.StringVar(&c.Storage, "storage", c.Storage, "where uploaded files are kept: local or s3")
	fs.StringVar(&c.BlobDir, "blob-dir", c.BlobDir, "root directory of the local blob store")
	fs.StringVar(&c.S3Bucket, "s3-bucket", c.S3Bucket, "S3 bucket for uploads")
	fs.StringVar(&c.S3Region, "s3-region", c.S3Region, "S3 region")
	fs.StringVar(&c.S3Endpoint, "s3-endpoint", c.S3Endpoint, "S3-compatible endpoint URL (MinIO)")
	fs.StringVar(&c.S3AccessKey, "s3-access-key", c.S3AccessKey, "S3 access key")
	fs.StringVar(&c.S3SecretKey, "s3-secret-key", c.S3SecretKey, "S3 secret key")

	fs.DurationVar(&c.BulkDelay, "bulk-delay", c.BulkDelay, "pause between items of a bulk download")

	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogBackend, "log-backend", c.LogBackend, "log backend: slog, json, zap")
}
