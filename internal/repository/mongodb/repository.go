package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

const (
	stateCollection      = "scenario_state"
	simulationCollection = "simulations"
)

// stateDocument is one key-value pair of scenario state.
type stateDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoDBRepository stores scenario state and simulation history in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
		logger: logger,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Load returns the value saved under key.
func (r *MongoDBRepository) Load(ctx context.Context, key string) (string, bool, error) {
	var doc stateDocument
	err := r.collection(stateCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load state %s: %w", key, err)
	}
	return doc.Value, true, nil
}

// Save upserts value under key.
func (r *MongoDBRepository) Save(ctx context.Context, key, value string) error {
	doc := stateDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := r.collection(stateCollection).ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	r.logger.Debug("scenario state saved", zap.String("key", key))
	return nil
}

// Delete removes key.
func (r *MongoDBRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection(stateCollection).DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// SaveSimulation saves a simulation run to the database.
func (r *MongoDBRepository) SaveSimulation(ctx context.Context, record models.SimulationRecord) error {
	_, err := r.collection(simulationCollection).InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}
	return nil
}

// ListSimulations returns up to limit runs, newest first.
func (r *MongoDBRepository) ListSimulations(ctx context.Context, limit int) ([]models.SimulationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection(simulationCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulations: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.SimulationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode simulations: %w", err)
	}
	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
