package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrEnvFileNotFound is returned when an explicitly requested dotenv file is missing.
	ErrEnvFileNotFound = errors.New("env file not found")
)
