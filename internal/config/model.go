// internal/config/model.go
//
// Typed configuration model for sitekit.
//
// Context
// -------
// These structs mirror the tree that loader.go merges from `.env`,
// `conf/global.yaml`, and `SITEKIT_`-prefixed environment variables.
// String leaves that start with `vault:` are swapped for the secret value
// before unmarshalling, so nothing below ever holds a Vault reference.
//
// Notes
// -----
//   - Tags are `koanf:"…"`; Koanf ignores `yaml` tags.
//   - Durations are Go duration strings ("1s", "30m").
//   - `Paths` is runtime only.
//   - Oxford commas, two spaces after periods.

package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

// Database points at the global `sites` schema.  Memory mode skips MySQL
// entirely and keeps every tenant's pages in process, which is what the
// demo and the tests use.
type Database struct {
	Memory   bool   `koanf:"memory"`
	DSN      string `koanf:"dsn"       validate:"required_unless=Memory true,omitempty,dsn_password"`
	Password string `koanf:"password"`
	MaxOpen  int    `koanf:"max_open"  validate:"gte=0"`
	MaxIdle  int    `koanf:"max_idle"  validate:"gte=0"`
}

// Editor tunes the live editing sessions held by the preview hub.
type Editor struct {
	MaxHistory     int           `koanf:"max_history"      validate:"gte=0"`
	CoalesceWindow time.Duration `koanf:"coalesce_window"`
	SaveDebounce   time.Duration `koanf:"save_debounce"`
	ResendInterval time.Duration `koanf:"resend_interval"`
	SessionIdleTTL time.Duration `koanf:"session_idle_ttl"`
}

// Preview tunes the frame socket.
type Preview struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
	RatePerSecond  float64  `koanf:"rate_per_second" validate:"gte=0"`
	Burst          int      `koanf:"burst"           validate:"gte=0"`
	RenderCache    int      `koanf:"render_cache"    validate:"gte=0"`
}

// Tenant bounds the host → tenant cache.
type Tenant struct {
	IdleTTL    time.Duration `koanf:"idle_ttl"`
	MaxEntries int           `koanf:"max_entries" validate:"gte=0"`
	// LocalhostAlias maps Host "localhost" onto a real site row.
	LocalhostAlias string `koanf:"localhost_alias"`
}

// Log picks the minimum level written to every sink.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Paths is resolved at runtime.
type Paths struct {
	Root    string // SITEKIT_ROOT or discovered parent
	Presets string // <root>/conf/presets.yaml
}

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Editor   Editor   `koanf:"editor"`
	Preview  Preview  `koanf:"preview"`
	Tenant   Tenant   `koanf:"tenant"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"`
}
