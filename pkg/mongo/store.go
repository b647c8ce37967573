package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	souvenirsCollection = "souvenirs"
	cartsCollection     = "carts"
)

// Store is the query surface over the souvenir catalog and the per-user
// carts. It holds the two collection handles and nothing else: every
// operation is a single round trip to the store, or a short fixed sequence
// of them, against the caller's context. No internal locking, no retries.
type Store struct {
	db        *mongo.Database
	souvenirs *mongo.Collection
	carts     *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		db:        db,
		souvenirs: db.Collection(souvenirsCollection),
		carts:     db.Collection(cartsCollection),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, nil); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}
