package constants

// Environment represents the execution environment (e.g., CLI, production).
type Environment string

// Environment types for logger configuration.
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)
