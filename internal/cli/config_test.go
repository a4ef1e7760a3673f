package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg := CLIConfig{
		ServerURL:     "http://myhost:9090",
		AdminUser:     "loudly",
		AdminPassword: "admin",
	}

	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(tmp, ".config", "loudly", "config.yaml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not found: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg != (CLIConfig{}) {
		t.Error("expected zero-value config for missing file")
	}
}

func TestConfigLoadInvalid(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir := filepath.Join(tmp, ".config", "loudly")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetServerURL(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		stored string
		want   string
	}{
		{"env wins", "http://custom:1234", "http://stored:1", "http://custom:1234"},
		{"from config", "", "http://stored:1", "http://stored:1"},
		{"default", "", "", defaultServerURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv("LOUDLY_SERVER_URL", tt.env)
			if tt.stored != "" {
				if err := saveConfig(CLIConfig{ServerURL: tt.stored}); err != nil {
					t.Fatalf("save: %v", err)
				}
			}

			if got := getServerURL(); got != tt.want {
				t.Errorf("url = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetCredentials(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOUDLY_ADMIN_USER", "")
	t.Setenv("LOUDLY_ADMIN_PASSWORD", "")

	if user, _ := getCredentials(); user != "" {
		t.Errorf("user = %q, want empty", user)
	}

	if err := saveConfig(CLIConfig{AdminUser: "stored", AdminPassword: "pw"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if user, pw := getCredentials(); user != "stored" || pw != "pw" {
		t.Errorf("credentials = %q/%q, want stored/pw", user, pw)
	}

	t.Setenv("LOUDLY_ADMIN_USER", "envuser")
	t.Setenv("LOUDLY_ADMIN_PASSWORD", "envpw")
	if user, pw := getCredentials(); user != "envuser" || pw != "envpw" {
		t.Errorf("credentials = %q/%q, want envuser/envpw", user, pw)
	}
}
