package config

import "strings"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	root := strings.TrimSpace(c.Library.Root)
	if root == "" {
		root = "."
	}
	expanded, err := expandPath(root)
	if err != nil {
		return err
	}
	c.Library.Root = expanded

	if dir := strings.TrimSpace(c.Logging.Dir); dir != "" {
		expanded, err := expandPath(dir)
		if err != nil {
			return err
		}
		c.Logging.Dir = expanded
	} else {
		c.Logging.Dir = ""
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}
