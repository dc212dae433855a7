// Package main provides a utility to create a configuration file for controleopcoes.
// The file is populated from the currently resolved configuration (defaults and
// CONTROLEOPCOES_* environment variables), optionally pointing at a custom endpoint.
package main

import (
	"log"
	"os"

	"github.com/controleopcoes/controleopcoes/internal/config"
)

func main() {
	if len(os.Args) > 2 {
		log.Fatalf("error: usage: %s [endpoint]", os.Args[0])
	}

	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		log.Fatalf("error: failed to load configuration: %v", err)
	}

	if len(os.Args) == 2 {
		cfg.Endpoint = os.Args[1]
	}

	path, err := config.Save(cfg)
	if err != nil {
		log.Fatalf("error: failed to save config file: %v", err)
	}

	log.Printf("config file written to %s (table %s in %s)", path, cfg.TableName, cfg.Region)
}
