// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structures and valid values for server
// settings, such as the runtime environment.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the environment
// (production, development). The environment gates unsafe toggles: webhook
// signature verification can only be skipped outside production.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command to validate the environment.
package server
