package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// chdir is t.Chdir from Go 1.24, reimplemented for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestReadConfig(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := []byte("HTTP_SERVER_READ_TIMEOUT: 5s\nAPI_PORT: 7070\n")
	if err := os.WriteFile(filepath.Join(dir, "data", "config.yaml"), cfg, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ReadConfig(); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if got := viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"); got != 5*time.Second {
		t.Errorf("HTTP_SERVER_READ_TIMEOUT = %v, want 5s", got)
	}
	if got := viper.GetInt("API_PORT"); got != 7070 {
		t.Errorf("API_PORT = %d, want 7070", got)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	// servers run fine without a config file, the caller only needs a
	// recognizable error to log and move on
	viper.Reset()
	chdir(t, t.TempDir())

	err := ReadConfig()
	if err == nil {
		t.Fatal("ReadConfig without a config file returned nil error")
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("ReadConfig error = %v, want ConfigFileNotFoundError", err)
	}
}
