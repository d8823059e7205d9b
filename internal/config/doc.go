// Package config manages application configuration for the GatherHub API.
//
// The config package loads and validates configuration from environment
// variables, optionally seeded from a .env file. All configuration is
// centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: token signing and validation settings
//   - UploadConfig: image hosting collaborator settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT         - HTTP server port (default: 8080)
//	DB_HOST             - SurrealDB host
//	DB_PORT             - SurrealDB port
//	DB_NAMESPACE        - Database namespace
//	DB_DATABASE         - Database name
//	JWT_SECRET          - Token signing secret (required)
//	JWT_EXPIRATION_DAYS - Token lifetime in days (default: 30)
//	UPLOAD_ENDPOINT     - Image hosting endpoint (optional)
//
// # Default Values
//
// Sensible defaults are provided for development:
//
//	func getEnv(key, defaultValue string) string {
//	    if value := os.Getenv(key); value != "" {
//	        return value
//	    }
//	    return defaultValue
//	}
package config
