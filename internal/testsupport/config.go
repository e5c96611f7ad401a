package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lumen/internal/config"
)

// EnvKeys lists every environment variable the config loader reads.
var EnvKeys = []string{
	"LUMEN_RUNTIME_DIR",
	"LUMEN_API_BIND",
	"LUMEN_API_TOKEN",
	"LUMEN_POLL_INTERVAL_MS",
	"LUMEN_LOG_FORMAT",
	"LUMEN_LOG_LEVEL",
	"LUMEN_LOG_FILE",
}

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique runtime directory, an
// ephemeral loopback bind, and a fast poll interval.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RuntimeDir = filepath.Join(base, "runtime")
	cfgVal.API.Bind = "127.0.0.1:0"
	cfgVal.Worker.PollIntervalMS = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithToken sets the API bearer token.
func WithToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.Token = token
	}
}

// WithPollInterval overrides the worker poll interval.
func WithPollInterval(d time.Duration) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Worker.PollIntervalMS = int(d / time.Millisecond)
	}
}

// WithLogFile points logging output at a file under the base directory.
func WithLogFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, "logs", name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RuntimeDir)
}

// ClearEnv unsets every LUMEN_* variable for the duration of the test.
func ClearEnv(t *testing.T) {
	t.Helper()
	for _, key := range EnvKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
