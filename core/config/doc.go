// Package config provides configuration management for the janitor.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, bucket cache TTL)
//   - Storage: provider, credential profile, region and endpoint
//   - Log: Logging level and format
//   - Database: audit store connection details
//   - Reconcile: retention, dry-run and worker defaults
//
// Environment variables map to keys by replacing dots with underscores, so
// STORAGE_PROFILE sets storage.profile.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Profile)
package config
