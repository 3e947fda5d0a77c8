package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures. It returns an error listing every problem
// found rather than stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT must not be empty")
	} else if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("SERVER_PORT %q is not a valid port", c.Server.Port))
	}

	if c.Server.ReadTimeout < 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT must not be negative")
	}
	if c.Server.WriteTimeout < 0 {
		problems = append(problems, "SERVER_WRITE_TIMEOUT must not be negative")
	}
	if c.Server.IdleTimeout < 0 {
		problems = append(problems, "SERVER_IDLE_TIMEOUT must not be negative")
	}

	if c.Aggregation.Interval < 0 {
		problems = append(problems, "AGGREGATION_INTERVAL must not be negative")
	}

	if c.Redis.URL == "" && c.Redis.Password != "" {
		problems = append(problems, "REDIS_PASSWORD is set but REDIS_URL is empty")
	}
	if c.Redis.DB < 0 {
		problems = append(problems, "REDIS_DB must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the host:port the HTTP server should listen on.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
