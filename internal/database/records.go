package database

import (
	"context"
	"regexp"
	"strings"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SlotsField is where every record kind keeps its custom field slots.
const SlotsField = "custom_fields"

// FindPage runs filter against coll, newest first, and returns the page plus
// the total match count.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, page models.Page) ([]T, int64, error) {
	offset := page.Normalize()

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(page.Limit)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindAll returns every document matching filter in creation order.
func FindAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID decodes the document with id into T.
func FindByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, what string) (*T, error) {
	var item T
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, models.NotFound(err, what)
	}
	return &item, nil
}

// ReplaceByID overwrites the document with id.
func ReplaceByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, doc interface{}, what string) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NotFound(mongo.ErrNoDocuments, what)
	}
	return nil
}

// DeleteByID removes the document with id.
func DeleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, what string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NotFound(mongo.ErrNoDocuments, what)
	}
	return nil
}

// ClearSlot nulls slot on every document of coll that holds a value there.
// Each document update is atomic; the sweep as a whole is not.
func ClearSlot(ctx context.Context, coll *mongo.Collection, slot models.Slot) (int64, error) {
	path := models.SlotPath(SlotsField, slot)
	res, err := coll.UpdateMany(ctx,
		bson.M{path: bson.M{"$ne": nil}},
		bson.M{"$set": bson.M{path: nil}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SearchFilter matches search case-insensitively against any of fields.
func SearchFilter(search string, fields ...string) bson.M {
	search = strings.TrimSpace(search)
	if search == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return bson.M{"$or": or}
}

// EnsureCreatedAtIndex adds the sort index used by FindPage.
func EnsureCreatedAtIndex(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}
