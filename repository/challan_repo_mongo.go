package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platerental/logger"
	"platerental/models"
)

type MongoChallanRepo struct {
	DB *mongo.Database
}

func NewMongoChallanRepo(db *mongo.Database) *MongoChallanRepo {
	return &MongoChallanRepo{DB: db}
}

// CreateChallan stores header and items as one document, then moves stock.
// A failed stock update undoes the sizes already moved and removes the
// challan again.
func (r *MongoChallanRepo) CreateChallan(ctx context.Context, rec *models.ChallanRecord) error {
	if rec.Items == nil {
		rec.Items = &models.ItemQuantities{}
	}
	rec.Items.Normalize()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	n, err := r.DB.Collection("client").CountDocuments(ctx, bson.M{"_id": rec.ClientID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClientNotFound
	}

	id, err := nextID(ctx, r.DB, "challan")
	if err != nil {
		return err
	}
	rec.ID = id

	if _, err := r.DB.Collection("challan").InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrChallanExists
		}
		return err
	}

	if err := applyStockDeltas(ctx, stockDeltas(rec.Type, rec.Items, 1), r.incStock); err != nil {
		cleanup, cancel := detached(ctx)
		defer cancel()
		if _, delErr := r.DB.Collection("challan").DeleteOne(cleanup, bson.M{"_id": rec.ID}); delErr != nil {
			log := logger.WithComponent("challan-repo")
			log.Error().Err(delErr).Int64("challan_id", rec.ID).Msg("could not remove challan after stock failure")
		}
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

func (r *MongoChallanRepo) incStock(ctx context.Context, size models.Size, delta int) error {
	_, err := r.DB.Collection("stock").UpdateOne(ctx,
		bson.M{"_id": int(size)},
		bson.M{
			"$inc": bson.M{"available": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoChallanRepo) ListChallans(ctx context.Context, clientID int64, t models.ChallanType) ([]models.ChallanRecord, error) {
	cur, err := r.DB.Collection("challan").Find(ctx,
		bson.M{"client_id": clientID, "type": t},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ChallanRecord
	for cur.Next(ctx) {
		var rec models.ChallanRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}

// DeleteChallan reverses the stock movement first and only then removes
// the challan, so a failed reversal leaves both untouched.
func (r *MongoChallanRepo) DeleteChallan(ctx context.Context, t models.ChallanType, number string) error {
	filter := bson.M{"type": t, "challan_number": number}

	var rec models.ChallanRecord
	err := r.DB.Collection("challan").FindOne(ctx, filter).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrChallanNotFound
		}
		return err
	}

	var deltas [models.NumSizes]int
	if rec.Items != nil {
		deltas = stockDeltas(rec.Type, rec.Items, -1)
	}
	if err := applyStockDeltas(ctx, deltas, r.incStock); err != nil {
		return fmt.Errorf("reverse stock: %w", err)
	}

	res, err := r.DB.Collection("challan").DeleteOne(ctx, bson.M{"_id": rec.ID})
	if err == nil && res.DeletedCount == 1 {
		return nil
	}
	if err == nil {
		err = ErrChallanNotFound
	}

	// challan still there (or removed concurrently): put the stock back
	restore, cancel := detached(ctx)
	defer cancel()
	for i := range deltas {
		deltas[i] = -deltas[i]
	}
	if rbErr := applyStockDeltas(restore, deltas, r.incStock); rbErr != nil {
		log := logger.WithComponent("challan-repo")
		log.Error().Err(rbErr).Int64("challan_id", rec.ID).Msg("could not restore stock after failed delete")
	}
	return err
}
