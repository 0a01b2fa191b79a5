// Package database opens the optional audit database.
//
// It wraps GORM with either the MySQL driver (default) or SQLite, which is
// handy for local runs and tests. The connection is verified with a ping
// bounded by the configured timeout.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Audit database unavailable", zap.Error(err))
//	}
package database
