package deal

import (
	"context"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DealRepository interface {
	Create(ctx context.Context, deal *Deal) error
	Get(ctx context.Context, id primitive.ObjectID) (*Deal, error)
	List(ctx context.Context, page models.Page, stage string) ([]Deal, int64, error)
	ListAll(ctx context.Context) ([]Deal, error)
	Update(ctx context.Context, deal *Deal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ClearSlot(ctx context.Context, slot models.Slot) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type DealRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDealRepository(mongodb *database.MongodbDB) DealRepository {
	return &DealRepositoryImpl{
		Collection: mongodb.DB.Collection(database.CollectionDeals),
	}
}

func (r *DealRepositoryImpl) Create(ctx context.Context, deal *Deal) error {
	_, err := r.Collection.InsertOne(ctx, deal)
	return err
}

func (r *DealRepositoryImpl) Get(ctx context.Context, id primitive.ObjectID) (*Deal, error) {
	return database.FindByID[Deal](ctx, r.Collection, id, "deal")
}

func (r *DealRepositoryImpl) List(ctx context.Context, page models.Page, stage string) ([]Deal, int64, error) {
	filter := database.SearchFilter(page.Search, "title", "description")
	if stage != "" {
		filter["stage"] = stage
	}
	return database.FindPage[Deal](ctx, r.Collection, filter, page)
}

func (r *DealRepositoryImpl) ListAll(ctx context.Context) ([]Deal, error) {
	return database.FindAll[Deal](ctx, r.Collection, bson.M{})
}

func (r *DealRepositoryImpl) Update(ctx context.Context, deal *Deal) error {
	return database.ReplaceByID(ctx, r.Collection, deal.ID, deal, "deal")
}

func (r *DealRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	return database.DeleteByID(ctx, r.Collection, id, "deal")
}

func (r *DealRepositoryImpl) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	return database.ClearSlot(ctx, r.Collection, slot)
}

func (r *DealRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	if err := database.EnsureCreatedAtIndex(ctx, r.Collection); err != nil {
		return err
	}
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "stage", Value: 1}},
	})
	return err
}
