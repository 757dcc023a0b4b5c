package database

import (
	"context"
	"log"
	"time"

	"pocket-crm/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

// Collection names shared by repositories and the backup archive.
const (
	CollectionContacts      = "contacts"
	CollectionLeads         = "leads"
	CollectionDeals         = "deals"
	CollectionFollowUps     = "follow_ups"
	CollectionCustomFields  = "custom_fields"
	CollectionNotifications = "notifications"
	CollectionAuditLogs     = "audit_logs"
	CollectionAppLogs       = "app_logs"
)

// MongodbDB wraps the application database handle.
type MongodbDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens and pings a MongoDB connection.
func Connect(ctx context.Context, cfg *config.Config) (*MongodbDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongodbDB{Client: client, DB: client.Database(cfg.DBName)}, nil
}

// NewDatabase creates a new MongoDB database connection with lifecycle management
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*MongodbDB, error) {
	db, err := Connect(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return db.Client.Disconnect(ctx)
		},
	})

	return db, nil
}

// Ping checks the primary is reachable.
func (m *MongodbDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}
