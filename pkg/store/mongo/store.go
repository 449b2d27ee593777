package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/otpvault/pkg/account"
)

type document struct {
	ID              string `bson:"_id"`
	Position        int    `bson:"position"`
	account.Account `bson:",inline"`
}

// Store keeps accounts in a collection.
type Store struct {
	coll *mongo.Collection
}

// New returns a Store over coll.
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Load returns every document ordered by position.
func (s *Store) Load(ctx context.Context) ([]account.Account, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}

	accounts := make([]account.Account, 0, len(docs))
	for _, d := range docs {
		accounts = append(accounts, d.Account)
	}
	return accounts, nil
}

// Save replaces every document with accounts.
func (s *Store) Save(ctx context.Context, accounts []account.Account) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	if len(accounts) == 0 {
		return nil
	}

	docs := make([]any, 0, len(accounts))
	for i, acc := range accounts {
		docs = append(docs, document{ID: uuid.NewString(), Position: i, Account: acc})
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}
