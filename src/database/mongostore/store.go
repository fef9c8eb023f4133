// Package mongostore persists accounts, forms and responses in MongoDB.
package mongostore

import (
	"Backend-Feedback/src/database"

	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db           *mongo.Database
	accounts     *mongo.Collection
	forms        *mongo.Collection
	responses    *mongo.Collection
	transactions bool
}

// New binds the store to db. transactions requires a replica set; without it the
// cascade delete falls back to ordered single-document writes.
func New(db *mongo.Database, transactions bool) *Store {
	return &Store{
		db:           db,
		accounts:     db.Collection(database.AccountsCollectionName),
		forms:        db.Collection(database.FormsCollectionName),
		responses:    db.Collection(database.ResponsesCollectionName),
		transactions: transactions,
	}
}
