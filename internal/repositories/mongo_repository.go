package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"profilecard/internal/apperrors"
	"profilecard/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const uniqueIndexPrefix = "uniq_"

// MongoRepository is a MongoDB implementation of ProfileRepository.
type MongoRepository[T any, P models.Record[T]] struct {
	collection *mongo.Collection
}

// NewMongoRepository returns a repository over the kind's collection in db.
func NewMongoRepository[T any, P models.Record[T]](db *mongo.Database) *MongoRepository[T, P] {
	var zero T
	return &MongoRepository[T, P]{
		collection: db.Collection(P(&zero).Kind().Collection()),
	}
}

// EnsureIndexes creates the unique indexes backing the kind's unique fields
// and the createdAt index used for listing.
func (r *MongoRepository[T, P]) EnsureIndexes(ctx context.Context) error {
	var zero T
	indexes := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}}
	for _, key := range P(&zero).UniqueKeys() {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: key.Field, Value: 1}},
			Options: options.Index().SetName(uniqueIndexPrefix + key.Field).SetUnique(true),
		})
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", r.collection.Name(), err)
	}
	return nil
}

// GetAll retrieves all documents, newest first.
func (r *MongoRepository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get all %s: %w", r.collection.Name(), err)
	}
	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.collection.Name(), err)
	}
	return records, nil
}

// GetByID retrieves a single document by its ID.
func (r *MongoRepository[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	var record T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s with ID %s: %w", r.collection.Name(), id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", r.collection.Name(), id, err)
	}
	return &record, nil
}

// Create inserts a new document. Unique indexes reject duplicates.
func (r *MongoRepository[T, P]) Create(ctx context.Context, record *T) error {
	p := P(record)
	if p.GetBase().ID == "" {
		p.GetBase().ID = models.NewID()
	}
	_, err := r.collection.InsertOne(ctx, record)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return duplicateKeyConflict(err, p)
	}
	return fmt.Errorf("failed to create %s: %w", r.collection.Name(), err)
}

// duplicateKeyConflict maps the server's "index: uniq_<field> dup key" message to the field.
func duplicateKeyConflict(err error, record models.Profile) error {
	msg := err.Error()
	keys := record.UniqueKeys()
	for _, key := range keys {
		if strings.Contains(msg, uniqueIndexPrefix+key.Field+" ") {
			return &apperrors.ConflictError{Field: key.Field, Value: key.Value}
		}
	}
	if strings.Contains(msg, "_id_") || len(keys) == 0 {
		return &apperrors.ConflictError{Field: "id", Value: record.GetBase().ID}
	}
	return &apperrors.ConflictError{Field: keys[0].Field, Value: keys[0].Value}
}
