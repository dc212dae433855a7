// Package constants defines global constants used throughout controleopcoes.
// It includes version information, paths, defaults and configuration keys.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of controleopcoes.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool and application
const ProjectName = "controleopcoes"

// DisplayName is the human readable application name used in headers.
const DisplayName = "ControleOpções"
