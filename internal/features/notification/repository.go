package notification

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, page models.Page) ([]Notification, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID, at time.Time) error
	MarkAllAsRead(ctx context.Context, at time.Time) (int64, error)
}

type NotificationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewNotificationRepository(mongodb *database.MongodbDB) NotificationRepository {
	return &NotificationRepositoryImpl{
		Collection: mongodb.DB.Collection(database.CollectionNotifications),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *Notification) error {
	_, err := r.Collection.InsertOne(ctx, n)
	return err
}

func (r *NotificationRepositoryImpl) List(ctx context.Context, page models.Page) ([]Notification, int64, error) {
	return database.FindPage[Notification](ctx, r.Collection, bson.M{}, page)
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"is_read": false})
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_read": true, "read_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NotFound(mongo.ErrNoDocuments, "notification")
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, at time.Time) (int64, error) {
	res, err := r.Collection.UpdateMany(ctx,
		bson.M{"is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
