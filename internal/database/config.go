package database

import (
	"fmt"
	"strings"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// DatabaseConfig holds MongoDB connection configuration
type DatabaseConfig struct {
	// MongoDB connection URI, including any auth details
	URI string
	// The current environment (local, development, production, or test)
	Environment string
	// Database name derived from environment and service name
	DatabaseName string
	// Application name reported to MongoDB for connection tracking
	AppName string
}

// GetDatabaseConfig builds the MongoDB configuration from environment
// variables. The database name is auto-generated as {env-prefix}-{service}.
func GetDatabaseConfig() *DatabaseConfig {
	environment := strings.ToLower(utils.GetEnvString("ENVIRONMENT", "development"))
	serviceName := utils.GetEnvString("SERVICE_NAME", "fraud-screening-pipeline")

	var envPrefix string
	switch environment {
	case "production", "prod":
		envPrefix = "prod"
		environment = "production"
	case "local":
		envPrefix = "loc"
	case "test":
		envPrefix = "test"
	default:
		envPrefix = "dev"
		environment = "development"
	}

	dbServiceName := strings.ReplaceAll(serviceName, "_", "-")
	dbServiceName = strings.TrimPrefix(dbServiceName, "go-")
	databaseName := fmt.Sprintf("%s-%s", envPrefix, dbServiceName)

	return &DatabaseConfig{
		URI:          utils.GetEnvString("MONGODB_URI", "mongodb://localhost:27017"),
		Environment:  environment,
		DatabaseName: databaseName,
		AppName:      serviceName,
	}
}

// MaskSensitiveData returns a copy safe for logging, with any credentials in
// the URI replaced.
func (c *DatabaseConfig) MaskSensitiveData() *DatabaseConfig {
	masked := *c
	if at := strings.Index(masked.URI, "@"); at >= 0 {
		if scheme := strings.Index(masked.URI, "://"); scheme >= 0 && scheme+3 < at {
			masked.URI = masked.URI[:scheme+3] + "***:***" + masked.URI[at:]
		}
	}
	return &masked
}
