package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the lookup service.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	DNSServer          string
	DNSNet             string
	DNSTimeout         time.Duration
	DNSRetries         int
	ResolveConcurrency int
}

type fileConfig struct {
	HTTPAddr           string `yaml:"http_addr"`
	LogLevel           string `yaml:"log_level"`
	LogFormat          string `yaml:"log_format"`
	DNSServer          string `yaml:"dns_server"`
	DNSNet             string `yaml:"dns_net"`
	DNSTimeout         string `yaml:"dns_timeout"`
	DNSRetries         *int   `yaml:"dns_retries"`
	ResolveConcurrency *int   `yaml:"resolve_concurrency"`
}

var ErrInvalidNet = errors.New(`dns_net must be "udp" or "tcp"`)

// Load reads configuration from the environment and, when RADIODNS_CONFIG
// names a file, overlays the values set in that YAML file.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	c := &Config{
		HTTPAddr:  envOr(getenv, "HTTP_ADDR", ":8081"),
		LogLevel:  envOr(getenv, "LOG_LEVEL", "info"),
		LogFormat: envOr(getenv, "LOG_FORMAT", "json"),
		DNSServer: getenv("DNS_SERVER"),
		DNSNet:    envOr(getenv, "DNS_NET", "udp"),
	}

	var err error
	if c.DNSTimeout, err = parseDuration("DNS_TIMEOUT", envOr(getenv, "DNS_TIMEOUT", "2s")); err != nil {
		return nil, err
	}
	if c.DNSRetries, err = parseInt("DNS_RETRIES", envOr(getenv, "DNS_RETRIES", "1")); err != nil {
		return nil, err
	}
	if c.ResolveConcurrency, err = parseInt("RESOLVE_CONCURRENCY", envOr(getenv, "RESOLVE_CONCURRENCY", "0")); err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(getenv("RADIODNS_CONFIG")); path != "" {
		if err := c.overlayFile(path); err != nil {
			return nil, err
		}
	}

	c.DNSNet = strings.ToLower(strings.TrimSpace(c.DNSNet))
	if c.DNSNet != "udp" && c.DNSNet != "tcp" {
		return nil, ErrInvalidNet
	}
	return c, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if f.HTTPAddr != "" {
		c.HTTPAddr = f.HTTPAddr
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}
	if f.DNSServer != "" {
		c.DNSServer = f.DNSServer
	}
	if f.DNSNet != "" {
		c.DNSNet = f.DNSNet
	}
	if f.DNSTimeout != "" {
		d, err := parseDuration("dns_timeout", f.DNSTimeout)
		if err != nil {
			return err
		}
		c.DNSTimeout = d
	}
	if f.DNSRetries != nil {
		if *f.DNSRetries < 0 {
			return fmt.Errorf("dns_retries must be a non-negative integer (got %d)", *f.DNSRetries)
		}
		c.DNSRetries = *f.DNSRetries
	}
	if f.ResolveConcurrency != nil {
		if *f.ResolveConcurrency < 0 {
			return fmt.Errorf("resolve_concurrency must be a non-negative integer (got %d)", *f.ResolveConcurrency)
		}
		c.ResolveConcurrency = *f.ResolveConcurrency
	}
	return nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	v := getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (got %q)", key, raw)
	}
	return d, nil
}

func parseInt(key, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer (got %q)", key, raw)
	}
	return n, nil
}
