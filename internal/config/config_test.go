package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != nil || cfg.Storage.Dir != nil {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadConfig_ReadsStorageSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[storage]\nbackend = \"file\"\ndir = \"/tmp/tafel-test\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend == nil || *cfg.Storage.Backend != "file" {
		t.Errorf("Backend = %v, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir == nil || *cfg.Storage.Dir != "/tmp/tafel-test" {
		t.Errorf("Dir = %v, want /tmp/tafel-test", cfg.Storage.Dir)
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage\nbackend="), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted malformed TOML, want error")
	}
}

func TestNormalizeBackend(t *testing.T) {
	file := "File"
	sqlite := "sqlite"
	empty := ""
	weird := "cloud"

	cases := []struct {
		in        *string
		want      string
		wantKnown bool
	}{
		{nil, BackendSQLite, true},
		{&empty, BackendSQLite, true},
		{&sqlite, BackendSQLite, true},
		{&file, BackendFile, true},
		{&weird, BackendSQLite, false},
	}
	for _, tc := range cases {
		got, known := NormalizeBackend(tc.in)
		if got != tc.want || known != tc.wantKnown {
			t.Errorf("NormalizeBackend(%v) = %q, %v; want %q, %v", tc.in, got, known, tc.want, tc.wantKnown)
		}
	}
}
