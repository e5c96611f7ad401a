package config

const (
	defaultRuntimeDir     = "~/.local/share/lumen"
	defaultAPIBind        = "127.0.0.1:5000"
	defaultPollIntervalMS = 50
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RuntimeDir: defaultRuntimeDir,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Worker: Worker{
			PollIntervalMS: defaultPollIntervalMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
