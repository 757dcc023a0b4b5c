package backup

import (
	"context"

	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
)

// DataRepository reads and replaces whole collections.
type DataRepository interface {
	Dump(ctx context.Context, collection string) ([]bson.Raw, error)
	Replace(ctx context.Context, collection string, docs []bson.Raw) error
}

type DataRepositoryImpl struct {
	mongodb *database.MongodbDB
}

func NewDataRepository(mongodb *database.MongodbDB) DataRepository {
	return &DataRepositoryImpl{mongodb: mongodb}
}

func (r *DataRepositoryImpl) Dump(ctx context.Context, collection string) ([]bson.Raw, error) {
	cursor, err := r.mongodb.DB.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []bson.Raw{}
	for cursor.Next(ctx) {
		doc := make(bson.Raw, len(cursor.Current))
		copy(doc, cursor.Current)
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}

// Replace drops every document of collection and inserts docs in their place.
func (r *DataRepositoryImpl) Replace(ctx context.Context, collection string, docs []bson.Raw) error {
	coll := r.mongodb.DB.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	items := make([]interface{}, len(docs))
	for i, doc := range docs {
		items[i] = doc
	}
	_, err := coll.InsertMany(ctx, items)
	return err
}
