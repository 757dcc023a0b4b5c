package lead

import (
	"context"
	"fmt"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	Get(ctx context.Context, id primitive.ObjectID) (*Lead, error)
	List(ctx context.Context, page models.Page, status string) ([]Lead, int64, error)
	ListAll(ctx context.Context) ([]Lead, error)
	// Update writes the editable fields only if is_converted still matches
	// lead.IsConverted.
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// MarkConverted flips is_converted only if the lead is not converted yet.
	MarkConverted(ctx context.Context, id primitive.ObjectID, contactID *primitive.ObjectID, dealID primitive.ObjectID, at time.Time) error
	ClearSlot(ctx context.Context, slot models.Slot) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type LeadRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewLeadRepository(mongodb *database.MongodbDB) LeadRepository {
	return &LeadRepositoryImpl{
		Collection: mongodb.DB.Collection(database.CollectionLeads),
	}
}

func (r *LeadRepositoryImpl) Create(ctx context.Context, lead *Lead) error {
	_, err := r.Collection.InsertOne(ctx, lead)
	return err
}

func (r *LeadRepositoryImpl) Get(ctx context.Context, id primitive.ObjectID) (*Lead, error) {
	return database.FindByID[Lead](ctx, r.Collection, id, "lead")
}

func (r *LeadRepositoryImpl) List(ctx context.Context, page models.Page, status string) ([]Lead, int64, error) {
	filter := database.SearchFilter(page.Search, "name", "email", "mobile", "whatsapp")
	if status != "" {
		filter["status"] = status
	}
	return database.FindPage[Lead](ctx, r.Collection, filter, page)
}

func (r *LeadRepositoryImpl) ListAll(ctx context.Context) ([]Lead, error) {
	return database.FindAll[Lead](ctx, r.Collection, bson.M{})
}

func (r *LeadRepositoryImpl) Update(ctx context.Context, lead *Lead) error {
	set := bson.M{
		"name":          lead.Name,
		"email":         lead.Email,
		"mobile":        lead.Mobile,
		"whatsapp":      lead.WhatsApp,
		"status":        lead.Status,
		"lead_source":   lead.LeadSource,
		"custom_fields": lead.Slots,
		"updated_at":    lead.UpdatedAt,
	}
	if !lead.IsConverted {
		set["contact_id"] = lead.ContactID
	}
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": lead.ID, "is_converted": lead.IsConverted},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err := r.Get(ctx, lead.ID); err != nil {
		return err
	}
	return fmt.Errorf("lead %s: %w", lead.ID.Hex(), ErrLeadConvertedConcurrently)
}

func (r *LeadRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	return database.DeleteByID(ctx, r.Collection, id, "lead")
}

func (r *LeadRepositoryImpl) MarkConverted(ctx context.Context, id primitive.ObjectID, contactID *primitive.ObjectID, dealID primitive.ObjectID, at time.Time) error {
	set := bson.M{
		"is_converted":      true,
		"status":            StatusConverted,
		"converted_deal_id": dealID,
		"converted_at":      at,
		"updated_at":        at,
	}
	if contactID != nil {
		set["contact_id"] = *contactID
	}
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id, "is_converted": bson.M{"$ne": true}},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("lead %s: %w", id.Hex(), ErrLeadAlreadyConverted)
	}
	return nil
}

func (r *LeadRepositoryImpl) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	return database.ClearSlot(ctx, r.Collection, slot)
}

func (r *LeadRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	if err := database.EnsureCreatedAtIndex(ctx, r.Collection); err != nil {
		return err
	}
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	return err
}
