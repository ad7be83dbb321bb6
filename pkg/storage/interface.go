// Package storage defines the persistence interfaces the operational commands
// rely on. It abstracts user accounts and background-job enqueueing together
// with transaction management so backends (e.g. PostgreSQL) can provide
// concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is a composite interface that includes all domain-specific
// storage capabilities required by the commands.
type AllStorage interface {
	UserStorage
	JobStorage
}

// TxStorage describes a storage handle operating within a database
// transaction. It exposes the same capabilities as AllStorage and additionally
// allows committing or rolling back. Implementations become unusable after
// Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions and manage its lifecycle.
type Storage interface {
	AllStorage

	// Close releases the underlying connection pool. After Close, the instance
	// should not be used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage scoped to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with a transactional handle, and
	// commits on success or rolls back when cb returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
