// Package buildinfo holds version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/teacherlms/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/dmitrijs2005/teacherlms/internal/buildinfo.buildDate=$(date -u +%F) \
//	  -X github.com/dmitrijs2005/teacherlms/internal/buildinfo.buildCommit=$(git rev-parse --short HEAD)" ./cmd/lms
package buildinfo

import (
	"fmt"
	"io"
)

const notAvailable = "N/A"

var (
	buildVersion = notAvailable
	buildDate    = notAvailable
	buildCommit  = notAvailable
)

// Version is the build version, or "N/A" for a plain go build.
func Version() string {
	return orNA(buildVersion)
}

// PrintBuildData writes the build version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", orNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(buildCommit))
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
