package config

import "os"

// Environment is the runtime environment the process believes it is in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the environment from ENV, with CI pipelines
// detected via the conventional CI variable. Unknown values fall back to
// development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func IsDevelopment() bool { return GetEnvironment() == Development }

func IsTest() bool { return GetEnvironment() == Test }

func IsProduction() bool { return GetEnvironment() == Production }
