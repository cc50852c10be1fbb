package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFeed()
	c.normalizeMerge()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeFeed() {
	c.Feed.Endpoint = strings.TrimRight(strings.TrimSpace(c.Feed.Endpoint), "/")
	if c.Feed.Endpoint == "" {
		c.Feed.Endpoint = defaultFeedEndpoint
	}
	c.Feed.ResourceID = strings.TrimSpace(c.Feed.ResourceID)
	if c.Feed.ResourceID == "" {
		c.Feed.ResourceID = defaultFeedResourceID
	}
	c.Feed.APIToken = strings.TrimSpace(c.Feed.APIToken)
	if c.Feed.APIToken == "" {
		if value, ok := os.LookupEnv("CITYFEED_API_TOKEN"); ok {
			c.Feed.APIToken = strings.TrimSpace(value)
		}
	}
	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = defaultFeedPageSize
	}
	if c.Feed.RequestTimeout <= 0 {
		c.Feed.RequestTimeout = defaultFeedTimeout
	}
}

func (c *Config) normalizeMerge() {
	if c.Merge.LockWaitSeconds <= 0 {
		c.Merge.LockWaitSeconds = defaultLockWait
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
