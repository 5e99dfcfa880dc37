package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvSkipsMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() = %v, want nil", err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "CGPA_DOTENV_TEST_NEW=from-file\nCGPA_DOTENV_TEST_SET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CGPA_DOTENV_TEST_SET", "from-env")
	t.Setenv("CGPA_DOTENV_TEST_NEW", "")
	os.Unsetenv("CGPA_DOTENV_TEST_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() = %v", err)
	}
	if got := os.Getenv("CGPA_DOTENV_TEST_NEW"); got != "from-file" {
		t.Fatalf("CGPA_DOTENV_TEST_NEW = %q, want %q", got, "from-file")
	}
	if got := os.Getenv("CGPA_DOTENV_TEST_SET"); got != "from-env" {
		t.Fatalf("CGPA_DOTENV_TEST_SET = %q, want %q", got, "from-env")
	}
}
