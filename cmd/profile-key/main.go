// Package main prints a random signing key for the web profile cookie.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/cgpa/internal/platform/config"
	"github.com/louisbranch/cgpa/internal/tools/profilekey"
)

func main() {
	cfg, err := profilekey.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := profilekey.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate key: %v", err)
	}
}
