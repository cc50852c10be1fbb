package config

const (
	defaultDataDir        = "~/.local/share/cityfeed/data"
	defaultLogDir         = "~/.local/share/cityfeed/logs"
	defaultDatabasePath   = "~/.local/share/cityfeed/violations.db"
	defaultFeedEndpoint   = "https://data.boston.gov/api/3/action/datastore_search"
	defaultFeedResourceID = "4582bec6-2b4f-4f9e-bc55-cbaa73117f4c"
	defaultFeedPageSize   = 32000
	defaultFeedTimeout    = 30
	defaultLockWait       = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		Feed: Feed{
			Endpoint:       defaultFeedEndpoint,
			ResourceID:     defaultFeedResourceID,
			PageSize:       defaultFeedPageSize,
			RequestTimeout: defaultFeedTimeout,
		},
		Merge: Merge{
			LockWaitSeconds: defaultLockWait,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
