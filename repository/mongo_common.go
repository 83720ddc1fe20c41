package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextID hands out sequential int64 ids per collection so Mongo documents
// keep the same numeric ids as the Postgres tables.
func nextID(ctx context.Context, db *mongo.Database, collection string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	return counter.Seq, err
}

// EnsureMongoIndexes creates the unique indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		"challan": {
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "challan_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		"bill": {
			Keys:    bson.D{{Key: "bill_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		"app_user": {
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
