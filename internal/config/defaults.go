package config

const (
	defaultAdapterName  = "hci0"
	defaultScanDuration = 5
	defaultStateDir     = "~/.local/share/bt"
	defaultLogDir       = "~/.local/share/bt/logs"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Adapter: Adapter{
			Name: defaultAdapterName,
		},
		Scan: Scan{
			DurationSeconds: defaultScanDuration,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
