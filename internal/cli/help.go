package cli

import (
	"fmt"
	"io"
)

func HelpNothing(program string, w io.Writer) {
	fmt.Fprintf(w, "Usage: \"%s [flags] FileName\"\n", program)
	fmt.Fprintf(w, "\"%s --help\" for displaying more information\n", program)
}

// Usage reports a command line mistake and returns the usage exit code.
func Usage(program string, stderr io.Writer, reason string) int {
	if reason != "" {
		fmt.Fprintf(stderr, "%s: %s\n", program, reason)
	}
	HelpNothing(program, stderr)
	return exitUsage
}
