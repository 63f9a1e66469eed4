// internal/store/mongo.go
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"booking-sync/internal/common/config"
	commonerrors "booking-sync/internal/common/errors"
	"booking-sync/internal/models"
)

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a BookingStore over the configured collection.
func NewMongoStore(client *mongo.Client, cfg config.MongoConfig) BookingStore {
	return &mongoStore{
		coll: client.Database(cfg.Database).Collection(cfg.Collection),
	}
}

func (s *mongoStore) FindByReference(ctx context.Context, ref string) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	err := s.coll.FindOne(ctx, bson.M{"booking_reference": ref}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, commonerrors.NewStoreQueryFailedError(ref, err)
	}
	return &rec, nil
}

func (s *mongoStore) Insert(ctx context.Context, doc *models.BookingRecord) error {
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return commonerrors.NewStoreWriteFailedError(doc.BookingReference, err)
	}
	return nil
}

func (s *mongoStore) UpdateFields(ctx context.Context, ref string, fields map[string]interface{}) error {
	update := bson.M{"$set": bson.M(fields)}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"booking_reference": ref}, update); err != nil {
		return commonerrors.NewStoreWriteFailedError(ref, err)
	}
	return nil
}

func (s *mongoStore) DeleteByReference(ctx context.Context, ref string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"booking_reference": ref})
	if err != nil {
		return false, commonerrors.NewStoreWriteFailedError(ref, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *mongoStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
