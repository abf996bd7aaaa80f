//go:build dev

package sqlite

// Development builds erase the store whenever the migrations no longer match
// its schema.
const eraseOnSchemaChange = true
