package config

import "os"

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	SERVER_ADDR   HTTP bind address
//	DATABASE_DSN  PostgreSQL DSN
//	JWT_SECRET    session token signing key
//
// Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SERVER_ADDR"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
}
