package repositories

import (
	"context"
	"time"

	"github.com/decidly/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepository defines the interface for outcome snapshot operations.
// Snapshots are append-only: there is no update or delete path.
type ResultRepository interface {
	AppendResult(ctx context.Context, result *models.ApplicationResult) error
	RecentResults(ctx context.Context, applicationID uint, limit int64) ([]models.ApplicationResult, error)
}

// MongoResultRepository implements ResultRepository for MongoDB
type MongoResultRepository struct {
	collection *mongo.Collection
}

// NewMongoResultRepository creates a new MongoResultRepository
func NewMongoResultRepository(db *mongo.Database) *MongoResultRepository {
	return &MongoResultRepository{collection: db.Collection("application_results")}
}

// AppendResult inserts a new outcome snapshot
func (r *MongoResultRepository) AppendResult(ctx context.Context, result *models.ApplicationResult) error {
	result.ID = primitive.NewObjectID()
	result.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

// RecentResults retrieves the newest snapshots of an application, capped at
// limit
func (r *MongoResultRepository) RecentResults(ctx context.Context, applicationID uint, limit int64) ([]models.ApplicationResult, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"application_id": applicationID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.ApplicationResult
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
