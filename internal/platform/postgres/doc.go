// Package postgres provides PostgreSQL implementations of the store
// interfaces, along with helpers for mapping database errors onto the
// store's sentinel errors.
package postgres
