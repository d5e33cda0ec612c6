// Package migrations provides the embedded history schema.
package migrations

import (
	_ "embed"
)

// InitialSQL creates the events table. It is idempotent.
//
//go:embed sql/001_initial.sql
var InitialSQL string
