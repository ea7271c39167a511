// Package store defines interfaces for data persistence.
// Concrete implementations live under internal/platform.
package store
