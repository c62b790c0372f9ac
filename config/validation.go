package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable in the current
// environment. The Spoonacular API key is the only hard secret: without it
// every search, signup, and shopping-list call fails. Test environments are
// exempt because they talk to a stubbed API.
func ValidateConfig(cfg *Config) error {
	var problems []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
		"REDIS_HOST":  cfg.RedisHost,
		"REDIS_PORT":  cfg.RedisPort,
	}
	for name, value := range required {
		if value == "" {
			problems = append(problems, fmt.Sprintf("required configuration %s is not set", name))
		}
	}

	env := GetEnvironment()
	if cfg.APIKey == "" && env != Test && env != CI {
		problems = append(problems, "required configuration API_KEY is not set")
	}
	if cfg.DBPassword == "" && env == Production {
		problems = append(problems, "DB_PASSWORD is required in production")
	}
	if cfg.SessionTTLHours <= 0 {
		problems = append(problems, "SESSION_TTL_HOURS must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}

	return nil
}
