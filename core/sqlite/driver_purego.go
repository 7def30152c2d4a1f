//go:build !cgo_sqlite

package sqlite

import (
	// Registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

const (
	driverName    = "sqlite"
	driverType    = "purego"
	driverPackage = "modernc.org/sqlite"
)
