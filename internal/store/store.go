// Package store defines the persistence interfaces for profiles and chat
// messages. The PostgreSQL implementation lives in the postgres subpackage;
// an in-memory implementation for tests lives in mock.
package store

import "context"

// ProfileStore persists registered face profiles. Profiles are append-only:
// there is no update or delete.
type ProfileStore interface {
	// CreateProfile stores a new profile and fills in its ID and CreatedAt.
	CreateProfile(ctx context.Context, profile *Profile) error

	// ListProfiles returns all profiles ordered oldest-first. The order is
	// stable across calls so positional indices stay meaningful within one
	// recognition run.
	ListProfiles(ctx context.Context) ([]Profile, error)
}

// MessageStore persists chat messages.
type MessageStore interface {
	// CreateMessage stores a new message and fills in its ID.
	CreateMessage(ctx context.Context, message *Message) error

	// ListMessages returns up to limit messages ordered newest-first.
	ListMessages(ctx context.Context, limit int) ([]Message, error)
}
