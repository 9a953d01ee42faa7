package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrReadOnly is reported for every collection a read-only process declines
// to write.
var ErrReadOnly = errors.New("record store is read-only")

// Collection names one persisted entity category.
type Collection string

const (
	CollectionAccounts Collection = "users"
	CollectionItems    Collection = "items"
	CollectionMembers  Collection = "members"
	CollectionRentals  Collection = "rentals"
)

// Collections lists every collection in save order.
func Collections() []Collection {
	return []Collection{CollectionAccounts, CollectionItems, CollectionMembers, CollectionRentals}
}

// RecordStore is the generic structured-record backend. Each collection is
// replaced as a whole on Write. Read of a collection that was never written
// returns no records and no error.
type RecordStore interface {
	Write(ctx context.Context, collection Collection, records []json.RawMessage) error
	Read(ctx context.Context, collection Collection) ([]json.RawMessage, error)
	Close() error
}
