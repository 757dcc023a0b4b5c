package customfield

import (
	"context"
	"fmt"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomFieldRepository interface {
	Create(ctx context.Context, field *CustomField) error
	Get(ctx context.Context, id primitive.ObjectID) (*CustomField, error)
	ListByModule(ctx context.Context, module models.Module) ([]CustomField, error)
	Update(ctx context.Context, field *CustomField) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type CustomFieldRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCustomFieldRepository(mongodb *database.MongodbDB) CustomFieldRepository {
	return &CustomFieldRepositoryImpl{
		Collection: mongodb.DB.Collection(database.CollectionCustomFields),
	}
}

// EnsureIndexes makes (module, column_name) unique so a slot can only be
// bound once per module even across processes.
func (r *CustomFieldRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "module", Value: 1}, {Key: "column_name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("module_column_unique"),
	})
	return err
}

func (r *CustomFieldRepositoryImpl) Create(ctx context.Context, field *CustomField) error {
	_, err := r.Collection.InsertOne(ctx, field)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", field.Module, field.ColumnName, ErrSlotTaken)
	}
	return err
}

func (r *CustomFieldRepositoryImpl) Get(ctx context.Context, id primitive.ObjectID) (*CustomField, error) {
	var field CustomField
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&field); err != nil {
		return nil, models.NotFound(err, "custom field")
	}
	return &field, nil
}

func (r *CustomFieldRepositoryImpl) ListByModule(ctx context.Context, module models.Module) ([]CustomField, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.Collection.Find(ctx, bson.M{"module": module}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	fields := []CustomField{}
	if err = cursor.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *CustomFieldRepositoryImpl) Update(ctx context.Context, field *CustomField) error {
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": field.ID}, bson.M{"$set": bson.M{
		"field_name": field.FieldName,
		"options":    field.Options,
		"updated_at": field.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("custom field: %w", models.ErrNotFound)
	}
	return nil
}

func (r *CustomFieldRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("custom field: %w", models.ErrNotFound)
	}
	return nil
}
