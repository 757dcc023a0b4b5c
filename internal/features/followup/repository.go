package followup

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FollowUpRepository interface {
	Create(ctx context.Context, followUp *FollowUp) error
	Get(ctx context.Context, id primitive.ObjectID) (*FollowUp, error)
	List(ctx context.Context, page models.Page) ([]FollowUp, int64, error)
	ListByRecord(ctx context.Context, ref models.RecordRef) ([]FollowUp, error)
	// ListUpcoming returns follow-ups due at or after from, soonest first.
	ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]FollowUp, error)
	Update(ctx context.Context, followUp *FollowUp) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type FollowUpRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewFollowUpRepository(mongodb *database.MongodbDB) FollowUpRepository {
	return &FollowUpRepositoryImpl{
		Collection: mongodb.DB.Collection(database.CollectionFollowUps),
	}
}

func (r *FollowUpRepositoryImpl) Create(ctx context.Context, followUp *FollowUp) error {
	_, err := r.Collection.InsertOne(ctx, followUp)
	return err
}

func (r *FollowUpRepositoryImpl) Get(ctx context.Context, id primitive.ObjectID) (*FollowUp, error) {
	return database.FindByID[FollowUp](ctx, r.Collection, id, "follow-up")
}

func (r *FollowUpRepositoryImpl) List(ctx context.Context, page models.Page) ([]FollowUp, int64, error) {
	filter := database.SearchFilter(page.Search, "notes", "follow_up_type", "follow_up_stage")
	return database.FindPage[FollowUp](ctx, r.Collection, filter, page)
}

func (r *FollowUpRepositoryImpl) ListByRecord(ctx context.Context, ref models.RecordRef) ([]FollowUp, error) {
	return database.FindAll[FollowUp](ctx, r.Collection, bson.M{
		"ref.module":    ref.Module,
		"ref.record_id": ref.RecordID,
	})
}

func (r *FollowUpRepositoryImpl) ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]FollowUp, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.Collection.Find(ctx, bson.M{"due_at": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []FollowUp{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FollowUpRepositoryImpl) Update(ctx context.Context, followUp *FollowUp) error {
	return database.ReplaceByID(ctx, r.Collection, followUp.ID, followUp, "follow-up")
}

func (r *FollowUpRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	return database.DeleteByID(ctx, r.Collection, id, "follow-up")
}

func (r *FollowUpRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ref.module", Value: 1}, {Key: "ref.record_id", Value: 1}}},
		{Keys: bson.D{{Key: "due_at", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
