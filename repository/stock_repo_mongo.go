package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platerental/models"
)

type MongoStockRepo struct {
	DB *mongo.Database
}

func NewMongoStockRepo(db *mongo.Database) *MongoStockRepo {
	return &MongoStockRepo{DB: db}
}

// GetStock always returns all nine sizes; sizes never touched read as zero.
func (r *MongoStockRepo) GetStock(ctx context.Context) ([]models.StockLevel, error) {
	cur, err := r.DB.Collection("stock").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	found := map[models.Size]models.StockLevel{}
	for cur.Next(ctx) {
		var s models.StockLevel
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		found[s.Size] = s
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.StockLevel, 0, models.NumSizes)
	for _, size := range models.AllSizes() {
		s, ok := found[size]
		if !ok {
			s = models.StockLevel{Size: size}
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *MongoStockRepo) SetStockTotal(ctx context.Context, size models.Size, total int) error {
	if !size.Valid() {
		return fmt.Errorf("invalid size %d", size)
	}
	var current models.StockLevel
	err := r.DB.Collection("stock").FindOne(ctx, bson.M{"_id": int(size)}).Decode(&current)
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}

	_, err = r.DB.Collection("stock").UpdateOne(ctx,
		bson.M{"_id": int(size)},
		bson.M{
			"$inc": bson.M{"available": total - current.Total},
			"$set": bson.M{"total": total, "updated_at": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
