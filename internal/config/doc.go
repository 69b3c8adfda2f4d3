// Package config provides configuration management for the dagukit CLI.
//
// Configuration is loaded from environment variables using the env package.
// All configuration values have sensible defaults for a local engine.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("engine API root: %s\n", cfg.BaseURL)
package config
