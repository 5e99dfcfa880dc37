// Package config loads CGPA_* settings for the cgpa commands from the
// environment and optional .env files, and reports fatal startup errors.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from CGPA_* environment variables using its env
// struct tags.
func ParseEnv(target any) error {
	if target == nil {
		return errors.New("parse env: target is required")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
