package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-mpi/internal/mediainfo"
)

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "%s, %s\n", mediainfo.AppName, mediainfo.FormatVersion(mediainfo.AppVersion))
}
