package mediainfo

import "strings"

const (
	AppName = "mpi"
	AppURL  = "https://github.com/autobrr/go-mpi"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

// FormatVersion renders a version for display: "v1.2.3", or "dev" for
// unreleased builds.
func FormatVersion(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" || version == "dev" {
		return "dev"
	}
	return "v" + version
}
