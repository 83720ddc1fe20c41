package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platerental/models"
)

type MongoClientRepo struct {
	DB *mongo.Database
}

func NewMongoClientRepo(db *mongo.Database) *MongoClientRepo {
	return &MongoClientRepo{DB: db}
}

func (r *MongoClientRepo) CreateClient(ctx context.Context, c *models.Client) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	id, err := nextID(ctx, r.DB, "client")
	if err != nil {
		return err
	}
	c.ID = id
	_, err = r.DB.Collection("client").InsertOne(ctx, c)
	return err
}

func (r *MongoClientRepo) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	err := r.DB.Collection("client").FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoClientRepo) ListClients(ctx context.Context) ([]*models.Client, error) {
	cur, err := r.DB.Collection("client").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Client
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
