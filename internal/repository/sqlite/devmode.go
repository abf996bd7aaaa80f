//go:build !dev

package sqlite

// eraseOnSchemaChange enables the migrator's erase-and-rebuild mode. Only
// builds tagged dev turn it on.
const eraseOnSchemaChange = false
