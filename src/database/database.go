package database

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	AccountsCollectionName  = "accounts"
	FormsCollectionName     = "forms"
	ResponsesCollectionName = "responses"
)

var (
	client     *mongo.Client
	once       sync.Once // ConnectMongoDB runs at most once
	connectErr error
)

// ConnectMongoDB connects and pings the primary once per process.
func ConnectMongoDB(mongoURI, dbName string) (*mongo.Database, error) {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(ctx, clientOptions)
		if connectErr != nil {
			log.Println("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(ctx, readpref.Primary())
		if connectErr != nil {
			log.Println("❌ MongoDB ping failed:", connectErr)
			return
		}

		log.Println("✅ MongoDB connected successfully")
	})
	if connectErr != nil {
		return nil, connectErr
	}
	return client.Database(dbName), nil
}

func DisconnectMongoDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the stores rely on for uniqueness.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AccountsCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(FormsCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "approvalStatus", Value: 1}, {Key: "isActive", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ResponsesCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "form", Value: 1}, {Key: "submittedAt", Value: -1}}},
		{
			// one submission per student, batch and calendar day
			Keys: bson.D{
				{Key: "form", Value: 1},
				{Key: "studentName", Value: 1},
				{Key: "batch", Value: 1},
				{Key: "submissionDay", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_daily_submission").
				SetPartialFilterExpression(bson.M{"isReFeedback": false}),
		},
		{
			// one correction per original response
			Keys: bson.D{{Key: "originalResponseId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_refeedback_original").
				SetPartialFilterExpression(bson.M{"isReFeedback": true}),
		},
	})
	if err != nil {
		return err
	}

	log.Println("✅ MongoDB indexes ensured")
	return nil
}
