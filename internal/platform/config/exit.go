package config

import (
	"fmt"
	"os"
)

// ExitPrefix starts every fatal message so it stands apart from logfmt lines
// on stderr.
const ExitPrefix = "cgpa: "

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, ExitPrefix+format+"\n", args...)
	os.Exit(1)
}
