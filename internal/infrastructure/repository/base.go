// Package repository contains the gorm-backed implementations of the domain
// repository interfaces. Write paths always hit the primary; read paths pick
// primary or replica from the caller's read preference.
package repository

import (
	"gorm.io/gorm"

	"spyglass/internal/shared/query"
)

// dbSet holds the primary database handle and an optional read replica.
type dbSet struct {
	primary *gorm.DB
	replica *gorm.DB
}

func newDBSet(primary, replica *gorm.DB) dbSet {
	return dbSet{primary: primary, replica: replica}
}

// reader returns the handle matching the read preference. Falls back to the
// primary when no replica is configured.
func (s dbSet) reader(pref query.ReadPreference) *gorm.DB {
	if pref == query.ReadReplica && s.replica != nil {
		return s.replica
	}
	return s.primary
}

// writer always returns the primary handle.
func (s dbSet) writer() *gorm.DB {
	return s.primary
}
