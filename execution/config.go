// Copyright 2025 Quadrant Analytics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package execution

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the server-level connection settings shared by all tenants.
// The database name is never part of the config; it arrives with each
// request's tenant context.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	SSLMode  string
}

// ConfigOption modifies a Config.
type ConfigOption func(*Config)

// WithHost sets the database server host.
func WithHost(host string) ConfigOption {
	return func(c *Config) { c.Host = host }
}

// WithPort sets the database server port.
// Default is 5432.
func WithPort(port int) ConfigOption {
	return func(c *Config) { c.Port = port }
}

// WithUser sets the database user.
func WithUser(user string) ConfigOption {
	return func(c *Config) { c.User = user }
}

// WithPassword sets the database password.
func WithPassword(password string) ConfigOption {
	return func(c *Config) { c.Password = password }
}

// WithSSLMode sets the sslmode connection parameter.
// Default is "require".
func WithSSLMode(mode string) ConfigOption {
	return func(c *Config) { c.SSLMode = mode }
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Port:    5432,
		SSLMode: "require",
	}
}

// NewConfig creates a Config with the given options applied over defaults.
func NewConfig(opts ...ConfigOption) *Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize trims whitespace and applies defaults for empty fields.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.User = strings.TrimSpace(c.User)
	c.SSLMode = strings.TrimSpace(c.SSLMode)
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "require"
	}
}

// Validate checks that the config can produce a connection string.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.User == "" {
		return errors.New("database user is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}
	return nil
}

// connString builds a pgx connection string for the named tenant database.
func (c *Config) connString(database string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, database, c.SSLMode)
}
