package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetKV(_ context.Context, path, key string, _ time.Duration) (string, error) {
	v, ok := f[path+"#"+key]
	if !ok {
		return "", errors.New("no such secret")
	}
	return v, nil
}

func writeRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

const memoryYAML = `
http:
  listen_addr: "127.0.0.1:8080"
database:
  memory: true
editor:
  save_debounce: 250ms
`

func TestLoadFrom_DefaultsAndDurations(t *testing.T) {
	root := writeRoot(t, memoryYAML)

	cfg, err := LoadFrom(root, nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Editor.SaveDebounce != 250*time.Millisecond {
		t.Fatalf("save_debounce = %v, want 250ms", cfg.Editor.SaveDebounce)
	}
	if cfg.Editor.ResendInterval != 2*time.Second || cfg.Editor.MaxHistory != 50 {
		t.Fatalf("editor defaults = %+v", cfg.Editor)
	}
	if cfg.Paths.Root != root || cfg.Paths.Presets != filepath.Join(root, "conf", "presets.yaml") {
		t.Fatalf("paths = %+v", cfg.Paths)
	}
	if Get() != cfg {
		t.Fatalf("Get did not return the loaded config")
	}
}

func TestLoadFrom_EnvOverlay(t *testing.T) {
	root := writeRoot(t, memoryYAML)
	t.Setenv("SITEKIT_HTTP__LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("SITEKIT_LOG__LEVEL", "debug")

	cfg, err := LoadFrom(root, nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.ListenAddr != "0.0.0.0:9090" {
		t.Fatalf("listen_addr = %q, want env value", cfg.HTTP.ListenAddr)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFrom_VaultReference(t *testing.T) {
	root := writeRoot(t, `
http:
  listen_addr: "127.0.0.1:8080"
database:
  dsn: "sitekit:%s@tcp(127.0.0.1:3306)/sitekit?parseTime=true"
  password: "vault:secret/sitekit#db_password"
`)
	cfg, err := LoadFrom(root, fakeSecrets{"secret/sitekit#db_password": "hunter2"})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Database.Password != "hunter2" {
		t.Fatalf("password = %q, want resolved secret", cfg.Database.Password)
	}

	if _, err := LoadFrom(root, nil); err == nil {
		t.Fatalf("vault reference without a secret source should fail")
	}
}

func TestLoadFrom_Validation(t *testing.T) {
	cases := map[string]string{
		"missing dsn": `
http:
  listen_addr: "127.0.0.1:8080"
`,
		"bad level": `
http:
  listen_addr: "127.0.0.1:8080"
database:
  memory: true
log:
  level: loud
`,
		"dsn without credentials": `
http:
  listen_addr: "127.0.0.1:8080"
database:
  dsn: "tcp(127.0.0.1:3306)/sitekit"
`,
	}
	for name, yaml := range cases {
		if _, err := LoadFrom(writeRoot(t, yaml), nil); err == nil {
			t.Errorf("%s: want validation error", name)
		}
	}
}
