// Package config provides configuration management for the Media Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, environment)
//   - Database: MySQL connection details
//   - Provider: Transcoding provider API credentials and webhook secret
//   - Sweep: Reconciliation sweep interval and concurrency
//   - Storage: S3/MinIO credentials for the webhook event archive
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
