// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. An
// sqlite driver is supported for local runs and tests.
//
// # Connect
//
// The Connect function establishes a connection for the configured driver,
// applies pool settings and verifies the connection with a bounded ping.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
