package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	common_models "pocket-crm/internal/common/models"
	"pocket-crm/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string
	Fields  map[string]interface{}
	Time    time.Time
}

// LogStore persists log lines.
type LogStore interface {
	InsertLog(ctx context.Context, log common_models.Log) error
}

type mongoLogStore struct {
	collection *mongo.Collection
}

func (s *mongoLogStore) InsertLog(ctx context.Context, log common_models.Log) error {
	_, err := s.collection.InsertOne(ctx, log)
	return err
}

// NewMongoLogStore stores log lines in the app_logs collection.
func NewMongoLogStore(mongodb *database.MongodbDB) LogStore {
	return &mongoLogStore{collection: mongodb.DB.Collection(database.CollectionAppLogs)}
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	store   LogStore
	logChan chan LogEntry
	appId   string
	done    chan struct{}
	once    sync.Once
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(store LogStore, appId string, buffer int) *DBLogWriter {
	writer := &DBLogWriter{
		store:   store,
		logChan: make(chan LogEntry, buffer),
		appId:   appId,
		done:    make(chan struct{}),
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop log rather than block the request path
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

// Close drains pending entries and stops the worker.
func (w *DBLogWriter) Close() {
	w.once.Do(func() {
		close(w.logChan)
		<-w.done
	})
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)
	for entry := range w.logChan {
		created := entry.Time
		if created.IsZero() {
			created = time.Now()
		}
		logRecord := common_models.Log{
			AppID:        w.appId,
			Level:        entry.Level.String(),
			Message:      entry.Message,
			Caller:       entry.Caller,
			Fields:       entry.Fields,
			CreatedOnUtc: created.UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := w.store.InsertLog(ctx, logRecord); err != nil {
			fmt.Println("DB Log write failed:", err)
		}
		cancel()
	}
}
