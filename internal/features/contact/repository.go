package contact

import (
	"context"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Get(ctx context.Context, id primitive.ObjectID) (*Contact, error)
	List(ctx context.Context, page models.Page) ([]Contact, int64, error)
	ListAll(ctx context.Context) ([]Contact, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ClearSlot(ctx context.Context, slot models.Slot) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type ContactRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewContactRepository(mongodb *database.MongodbDB) ContactRepository {
	return &ContactRepositoryImpl{
		Collection: mongodb.DB.Collection(database.CollectionContacts),
	}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *Contact) error {
	_, err := r.Collection.InsertOne(ctx, contact)
	return err
}

func (r *ContactRepositoryImpl) Get(ctx context.Context, id primitive.ObjectID) (*Contact, error) {
	return database.FindByID[Contact](ctx, r.Collection, id, "contact")
}

func (r *ContactRepositoryImpl) List(ctx context.Context, page models.Page) ([]Contact, int64, error) {
	filter := database.SearchFilter(page.Search, "name", "mobile", "email", "company")
	return database.FindPage[Contact](ctx, r.Collection, filter, page)
}

func (r *ContactRepositoryImpl) ListAll(ctx context.Context) ([]Contact, error) {
	return database.FindAll[Contact](ctx, r.Collection, bson.M{})
}

func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *Contact) error {
	return database.ReplaceByID(ctx, r.Collection, contact.ID, contact, "contact")
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	return database.DeleteByID(ctx, r.Collection, id, "contact")
}

func (r *ContactRepositoryImpl) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	return database.ClearSlot(ctx, r.Collection, slot)
}

func (r *ContactRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	return database.EnsureCreatedAtIndex(ctx, r.Collection)
}
