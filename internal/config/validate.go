package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DatabasePath == "" {
		return errors.New("paths.database_path must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.Endpoint == "" {
		return errors.New("feed.endpoint must be set")
	}
	parsed, err := url.Parse(c.Feed.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("feed.endpoint %q is not a valid URL", c.Feed.Endpoint)
	}
	if c.Feed.ResourceID == "" {
		return errors.New("feed.resource_id must be set")
	}
	if c.Feed.PageSize <= 0 {
		return errors.New("feed.page_size must be positive")
	}
	if c.Feed.RequestTimeout <= 0 {
		return errors.New("feed.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateMerge() error {
	if c.Merge.LockWaitSeconds <= 0 {
		return errors.New("merge.lock_wait_seconds must be positive")
	}
	return nil
}
