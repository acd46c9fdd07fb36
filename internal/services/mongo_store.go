package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoBackend = "mongo"

// MongoStore keeps the directory as one document per entry
type MongoStore struct {
	collection *mongo.Collection
	logger     *logging.SafeLogger
	now        func() time.Time
}

// NewMongoStore creates a MongoDB-backed directory store
func NewMongoStore(db *mongo.Database, collectionName string, logger *logging.SafeLogger) *MongoStore {
	return &MongoStore{
		collection: db.Collection(collectionName),
		logger:     logger.With(zap.String("store", mongoBackend)),
		now:        time.Now,
	}
}

// ListEntries returns all entries ordered by insertion time
func (s *MongoStore) ListEntries(ctx context.Context) ([]models.DirectoryEntry, error) {
	entries := []models.DirectoryEntry{}

	err := instrumentStoreCall(ctx, mongoBackend, "list", func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		})

		cursor, err := s.collection.Find(ctx, bson.M{}, opts)
		if err != nil {
			return fmt.Errorf("%w: find entries: %w", models.ErrStoreUnavailable, err)
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, &entries); err != nil {
			return fmt.Errorf("%w: decode entries: %w", models.ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to list directory entries", zap.Error(err))
		return nil, err
	}

	return entries, nil
}

// AppendEntry inserts a new document; the stored ID and timestamp are assigned here
func (s *MongoStore) AppendEntry(ctx context.Context, entry models.DirectoryEntry) error {
	entry = entry.Trimmed()
	err := instrumentStoreCall(ctx, mongoBackend, "append", func(ctx context.Context) error {
		doc := entry
		doc.ID = primitive.NilObjectID
		doc.CreatedAt = s.now().UTC()

		if _, err := s.collection.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("%w: insert entry: %w", models.ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to append directory entry",
			zap.String("contact_handle", entry.ContactHandle),
			zap.Error(err))
		return err
	}

	s.logger.Info("directory entry appended", zap.String("contact_handle", entry.ContactHandle))
	return nil
}
