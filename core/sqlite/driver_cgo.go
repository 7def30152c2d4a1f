//go:build cgo_sqlite

package sqlite

import (
	// Registers the CGO "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName    = "sqlite3"
	driverType    = "cgo"
	driverPackage = "github.com/mattn/go-sqlite3"
)
